package order

import (
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/product"
)

type ItemResponse struct {
	ID        uint              `json:"id"`
	Product   *product.Response `json:"product"`
	Quantity  int               `json:"quantity"`
	LineTotal string            `json:"line_total"`
	CreatedAt string            `json:"created_at"`
}

type Response struct {
	ID            uint              `json:"id"`
	State         State             `json:"state"`
	Complete      bool              `json:"complete"`
	TransactionID *string           `json:"transaction_id"`
	CreatedAt     string            `json:"created_at"`
	Items         []*ItemResponse   `json:"items"`
	ItemCount     int               `json:"cart_items"`
	Total         string            `json:"cart_total"`
	Shipping      *address.Response `json:"shipping,omitempty"`
}

type CheckoutResponse struct {
	Message       string `json:"message"`
	OrderID       uint   `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	Total         string `json:"cart_total"`
	ItemCount     int    `json:"cart_items"`
}

const checkoutMessage = "Payment complete!"

func ToItemResponse(it *OrderItem) *ItemResponse {
	return &ItemResponse{
		ID:        it.ID,
		Product:   product.ToResponse(it.Product),
		Quantity:  it.Quantity,
		LineTotal: it.LineTotal().StringFixed(2),
		CreatedAt: it.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToResponse(o *Order) *Response {
	items := make([]*ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ToItemResponse(it))
	}

	res := &Response{
		ID:            o.ID,
		State:         o.State(),
		Complete:      o.Complete,
		TransactionID: o.TransactionID,
		Items:         items,
		ItemCount:     o.ItemCount(),
		Total:         o.Total().StringFixed(2),
		Shipping:      address.ToResponse(o.Shipping),
	}
	if !o.CreatedAt.IsZero() {
		res.CreatedAt = o.CreatedAt.UTC().Format(time.RFC3339)
	}
	return res
}

func ToResponses(orders []*Order) []*Response {
	out := make([]*Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}

func ToCheckoutResponse(r *CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Message:       checkoutMessage,
		OrderID:       r.Order.ID,
		TransactionID: r.TransactionID,
		Total:         r.Order.Total().StringFixed(2),
		ItemCount:     r.Order.ItemCount(),
	}
}
