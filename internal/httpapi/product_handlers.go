package httpapi

import (
	"net/http"

	"campusmart-be/internal/middleware"
	"campusmart-be/internal/product"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) myProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	products, err := h.products.ListBySeller(r.Context(), sellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	var input product.NewProductInput
	if !decodeBody(w, r, &input) {
		return
	}

	created, err := h.products.Create(r.Context(), sellerID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.products.Delete(r.Context(), callerID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
