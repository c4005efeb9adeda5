package httpapi

import (
	"net/http"

	"campusmart-be/internal/cart"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/metrics"
	"campusmart-be/internal/middleware"
	"campusmart-be/internal/order"
	"campusmart-be/internal/product"
	"campusmart-be/internal/user"
)

// Handler bundles the domain services behind the REST surface.
type Handler struct {
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
}

func NewHandler(users user.Service, products product.Service, carts cart.Service, orders order.Service) *Handler {
	return &Handler{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// NewRouter wires the API routes. Routes under auth require a valid
// bearer token; the rest are public. Rate limiting runs inside the
// auth wrapper so authenticated requests are bucketed by user id, not
// by the caller's IP.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.Auth(h.users)

	public := func(fn http.HandlerFunc) http.Handler {
		return middleware.RateLimit(fn)
	}
	protected := func(fn http.HandlerFunc) http.Handler {
		return auth(middleware.RateLimit(fn))
	}

	// auth
	mux.Handle("POST /api/auth/register", public(h.register))
	mux.Handle("POST /api/auth/login", public(h.login))
	mux.Handle("GET /api/auth/me", protected(h.me))
	mux.Handle("PUT /api/auth/update-profile", protected(h.updateProfile))

	// products
	mux.Handle("GET /api/products", public(h.listProducts))
	mux.Handle("GET /api/products/myproducts", protected(h.myProducts))
	mux.Handle("GET /api/products/{id}", public(h.getProduct))
	mux.Handle("POST /api/products", protected(h.createProduct))
	mux.Handle("DELETE /api/products/{id}", protected(h.deleteProduct))

	// cart
	mux.Handle("GET /api/cart", protected(h.getCart))
	mux.Handle("POST /api/cart/add", protected(h.addToCart))
	mux.Handle("DELETE /api/cart/remove/{productId}", protected(h.removeFromCart))
	mux.Handle("DELETE /api/cart/clear", protected(h.clearCart))

	// orders
	mux.Handle("POST /api/orders/place", protected(h.placeOrders))
	mux.Handle("POST /api/orders/generate-otp/{orderId}", protected(h.generateOTP))
	mux.Handle("PATCH /api/orders/complete/{orderId}", protected(h.completeOrder))
	mux.Handle("GET /api/orders/my-orders", protected(h.myOrders))
	mux.Handle("GET /api/orders/buyer", protected(h.myOrders))
	mux.Handle("GET /api/orders/seller-orders", protected(h.sellerOrders))
	mux.Handle("GET /api/orders/to-deliver", protected(h.ordersToDeliver))

	// operational endpoints
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = mux
	handler = metrics.Middleware(mux)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}
