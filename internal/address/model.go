package address

import "time"

const maxFieldLength = 200

type ShippingAddress struct {
	ID         uint      `json:"id"`
	CustomerID *uint     `json:"customer_id"`
	OrderID    *uint     `json:"order_id"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Zipcode    string    `json:"zipcode"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShippingInput is the shipping block of a checkout request.
type ShippingInput struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}
