package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront-be/internal/product"
	"storefront-be/internal/utils"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductSvc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponses(products))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProductSvc.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}
