package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/payments-worldpay/internal/interfaces/rest/middleware"
)

// HandlerSet is what the router mounts; satisfied by handlers.Handlers.
type HandlerSet interface {
	GetConfigure(w http.ResponseWriter, r *http.Request)
	PostConfigure(w http.ResponseWriter, r *http.Request)
	GetPaymentInfo(w http.ResponseWriter, r *http.Request)
	PostCheckout(w http.ResponseWriter, r *http.Request)
	Return(w http.ResponseWriter, r *http.Request)
}

// NewRouter mounts the plugin routes under /Plugins/PaymentWorldPay with
// the recovery/logging/timeout chain.
func NewRouter(h HandlerSet, logger *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Timeout(timeout))

	r.Route("/Plugins/PaymentWorldPay", func(r chi.Router) {
		r.Get("/Configure", h.GetConfigure)
		r.Post("/Configure", h.PostConfigure)
		r.Get("/PaymentInfo", h.GetPaymentInfo)
		r.Post("/Checkout", h.PostCheckout)
		// The gateway posts the shopper back here; GET covers manual
		// revisits of the return URL.
		r.Get("/Return", h.Return)
		r.Post("/Return", h.Return)
	})

	return r
}
