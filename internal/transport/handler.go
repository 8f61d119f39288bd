// Package transport exposes the storefront services over HTTP.
package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront-be/internal/cart"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
)

// Handler holds the services the HTTP endpoints call into.
type Handler struct {
	ProductSvc product.Service
	UserSvc    user.Service
	CartSvc    cart.Service
	OrderSvc   order.Service
}

// Register mounts every API route on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/register/", h.register).Methods(http.MethodPost)
	r.HandleFunc("/api/token/", h.token).Methods(http.MethodPost)

	r.HandleFunc("/api/products/", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{slug}/", h.getProduct).Methods(http.MethodGet)

	r.HandleFunc("/api/cart/", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/update_item/", h.updateItem).Methods(http.MethodPost)
	r.HandleFunc("/process_order/", h.processOrder).Methods(http.MethodPost)

	r.HandleFunc("/api/orders/", h.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/", h.createOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/orders/history/", h.orderHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{id:[0-9]+}/", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{id:[0-9]+}/", h.updateOrder).Methods(http.MethodPatch)
	r.HandleFunc("/api/orders/{id:[0-9]+}/", h.deleteOrder).Methods(http.MethodDelete)
}
