package transport

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"
)

type processOrderRequest struct {
	Shipping address.ShippingInput `json:"shipping"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	o, err := h.CartSvc.GetCart(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart.ToResponse(o))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		// the storefront script reads "message" on this endpoint
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "User not logged in"})
		return
	}

	var input cart.UpdateItemInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.CartSvc.UpdateItem(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, cart.ToUpdateItemResponse(res))
}

func (h *Handler) processOrder(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		writeError(w, r, order.ErrUserNotAuthenticated)
		return
	}

	var req processOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.OrderSvc.Checkout(r.Context(), caller, req.Shipping)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, order.ToCheckoutResponse(res))
}
