package order

import (
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/product"
)

// State is where an order sits in its lifecycle. An Open order is the
// customer's cart; it becomes Complete exactly once, at checkout.
type State string

const (
	StateOpen     State = "open"
	StateComplete State = "complete"
)

type Order struct {
	ID            uint
	CustomerID    *uint
	CreatedAt     time.Time
	Complete      bool
	TransactionID *string
	Items         []*OrderItem
	Shipping      *address.ShippingAddress
}

func (o *Order) State() State {
	if o.Complete {
		return StateComplete
	}
	return StateOpen
}

// OrderItem binds a product to an order. Product is nil when the product was
// deleted after the item was added.
type OrderItem struct {
	ID        uint
	OrderID   *uint
	Product   *product.Product
	Quantity  int
	CreatedAt time.Time
}

// CheckoutResult acknowledges a completed checkout.
type CheckoutResult struct {
	Order         *Order
	TransactionID string
}
