package handlers

import (
	"net/http"

	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

type returnPage struct {
	RedirectURL string
}

// Return receives the hosted payment page callback. Integrity failures are
// answered with 400 and leave the order untouched.
func (h *Handlers) Return(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed callback", http.StatusBadRequest)
		return
	}

	// The gateway posts the fields, but a GET revisit of the return URL
	// carries them in the query string; Form covers both.
	cb := worldpay.ParseCallback(r.Form, r.URL.Query())

	order, err := h.callbacks.Handle(r.Context(), cb)
	if err != nil {
		if cbErr, ok := worldpay.IsCallbackError(err); ok {
			http.Error(w, cbErr.Message, http.StatusBadRequest)
			return
		}
		h.logger.Error("callback processing failed", "error", err)
		http.Error(w, "callback processing failed", http.StatusInternalServerError)
		return
	}

	h.templates.Render(w, h.logger, http.StatusOK, "return", returnPage{
		RedirectURL: h.store.CheckoutCompletedURL(order.ID),
	})
}
