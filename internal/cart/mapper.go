package cart

import "storefront-be/internal/order"

const itemUpdatedMessage = "Item updated successfully"

type UpdateItemResponse struct {
	Message   string `json:"message"`
	CartItems int    `json:"cartItems"`
}

func ToUpdateItemResponse(res *MutationResult) *UpdateItemResponse {
	return &UpdateItemResponse{
		Message:   itemUpdatedMessage,
		CartItems: res.CartItems,
	}
}

// Response is the cart view. Anonymous carts have no id.
type Response struct {
	OrderID   *uint                 `json:"order_id"`
	Items     []*order.ItemResponse `json:"items"`
	CartItems int                   `json:"cart_items"`
	CartTotal string                `json:"cart_total"`
}

func ToResponse(o *order.Order) *Response {
	items := make([]*order.ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, order.ToItemResponse(it))
	}

	res := &Response{
		Items:     items,
		CartItems: o.ItemCount(),
		CartTotal: o.Total().StringFixed(2),
	}
	if o.ID != 0 {
		id := o.ID
		res.OrderID = &id
	}
	return res
}
