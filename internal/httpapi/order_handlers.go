package httpapi

import (
	"net/http"

	"campusmart-be/internal/middleware"
	"campusmart-be/internal/order"
)

func (h *Handler) placeOrders(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := middleware.GetUserIDFromContext(r.Context())

	placed, err := h.orders.Checkout(r.Context(), buyerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Orders placed successfully",
		"orders":  placed,
	})
}

func (h *Handler) generateOTP(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.orders.GenerateOTP(r.Context(), sellerID, r.PathValue("orderId")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP generated and sent to buyer"})
}

type completeOrderRequest struct {
	OTP string `json:"otp"`
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	var req completeOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	completed, err := h.orders.Complete(r.Context(), sellerID, r.PathValue("orderId"), req.OTP)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order completed successfully",
		"order":   completed,
	})
}

func ordersResponse(orders []order.Order) map[string]any {
	if orders == nil {
		orders = []order.Order{}
	}
	return map[string]any{"orders": orders}
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := middleware.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListForBuyer(r.Context(), buyerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse(orders))
}

func (h *Handler) sellerOrders(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListForSeller(r.Context(), sellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse(orders))
}

func (h *Handler) ordersToDeliver(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := middleware.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListToDeliver(r.Context(), sellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse(orders))
}
