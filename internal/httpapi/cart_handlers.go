package httpapi

import (
	"net/http"

	"campusmart-be/internal/cart"
	"campusmart-be/internal/middleware"
)

func cartResponse(items []cart.Item) map[string]any {
	if items == nil {
		items = []cart.Item{}
	}
	return map[string]any{"cart": items}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	items, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req addToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeErrorMessage(w, "productId is required", http.StatusBadRequest)
		return
	}

	items, err := h.carts.AddItem(r.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	items, err := h.carts.RemoveItem(r.Context(), userID, r.PathValue("productId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(items))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(nil))
}
