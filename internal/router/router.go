package router

import (
	"context"
	"net/http"

	"tasdrives/internal/handler"
	"tasdrives/internal/middleware"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Vehicle      *handler.VehicleHandler
	Cart         *handler.CartHandler
	Notification *handler.NotificationHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Shipping     *handler.ShippingHandler
	Contact      *handler.ContactHandler
	Admin        *handler.AdminHandler

	// Health reports whether dependencies are reachable. Nil means always healthy.
	Health func(ctx context.Context) error
}

// Auth holds the credentials checked by the middleware chain.
type Auth struct {
	APIKey        string
	SessionStore  sessions.Store
	// SessionHeader accepts X-Session-ID in place of the session cookie.
	SessionHeader bool
	JWTSecret     string
	AdminEmails   []string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, auth Auth, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	session := middleware.Session(auth.SessionStore, auth.SessionHeader, logger)
	admin := middleware.RequireAdmin(auth.JWTSecret, auth.AdminEmails, logger)

	withSession := func(fn http.HandlerFunc) http.Handler { return session(fn) }
	withAdmin := func(fn http.HandlerFunc) http.Handler { return admin(fn) }

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if h.Health != nil {
			if err := h.Health(r.Context()); err != nil {
				logger.Error().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unhealthy"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog
	mux.HandleFunc("GET /api/vehicles", h.Vehicle.List)
	mux.HandleFunc("GET /api/vehicles/featured", h.Vehicle.Featured)
	mux.HandleFunc("GET /api/vehicles/{id}", h.Vehicle.GetByID)

	// Session cart
	mux.Handle("GET /api/cart", withSession(h.Cart.Get))
	mux.Handle("DELETE /api/cart", withSession(h.Cart.Clear))
	mux.Handle("POST /api/cart/items", withSession(h.Cart.AddItem))
	mux.Handle("DELETE /api/cart/items/{id}", withSession(h.Cart.RemoveItem))
	mux.Handle("POST /api/cart/items/{id}/increase", withSession(h.Cart.IncreaseItem))
	mux.Handle("POST /api/cart/items/{id}/decrease", withSession(h.Cart.DecreaseItem))
	mux.Handle("PUT /api/cart/note", withSession(h.Cart.SetNote))
	mux.Handle("POST /api/cart/coupon", withSession(h.Cart.ApplyCoupon))
	mux.Handle("DELETE /api/cart/coupon", withSession(h.Cart.RemoveCoupon))

	// Session notifications
	mux.Handle("GET /api/notifications", withSession(h.Notification.List))
	mux.Handle("DELETE /api/notifications", withSession(h.Notification.ClearAll))
	mux.Handle("POST /api/notifications/read-all", withSession(h.Notification.MarkAllAsRead))
	mux.Handle("POST /api/notifications/{id}/read", withSession(h.Notification.MarkAsRead))

	// Checkout and orders
	mux.Handle("POST /api/checkout/payment-intent", withSession(h.Checkout.CreatePaymentIntent))
	mux.Handle("POST /api/orders", withSession(h.Checkout.ConfirmOrder))
	mux.HandleFunc("POST /api/webhooks/stripe", h.Checkout.Webhook)
	mux.HandleFunc("GET /api/user/orders", h.Order.List)
	mux.HandleFunc("GET /api/user/orders/{orderNumber}", h.Order.Get)
	mux.HandleFunc("GET /api/shipping/{trackingNumber}", h.Shipping.Track)

	// Leads
	mux.HandleFunc("POST /api/contact", h.Contact.Contact)
	mux.HandleFunc("POST /api/appointments", h.Contact.Appointment)
	mux.HandleFunc("POST /api/advisor-requests", h.Contact.AdvisorRequest)

	// Admin
	mux.Handle("GET /api/admin/payments", withAdmin(h.Admin.Payments))
	mux.Handle("GET /api/admin/dashboard", withAdmin(h.Admin.Dashboard))
	mux.Handle("POST /api/admin/vehicles", withAdmin(h.Vehicle.Create))
	mux.Handle("PUT /api/admin/vehicles/{id}", withAdmin(h.Vehicle.Update))
	mux.Handle("DELETE /api/admin/vehicles/{id}", withAdmin(h.Vehicle.Delete))

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(auth.APIKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
