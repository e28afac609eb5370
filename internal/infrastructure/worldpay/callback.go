package worldpay

import (
	"net/url"
	"strings"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// Transaction status values the hosted page reports back.
const (
	TransStatusSuccess   = "Y"
	TransStatusCancelled = "C"
)

// Callback is the ephemeral payload of a hosted-page payment notification.
// It is parsed, validated and discarded; nothing here is persisted.
type Callback struct {
	TransStatus      string
	CallbackPassword string
	OrderID          string // cartId as echoed back by the gateway
	InstanceID       string
	TransactionID    string
	Message          string
}

// ParseCallback extracts the callback from the inbound form post and the
// msg query parameter.
func ParseCallback(form url.Values, query url.Values) *Callback {
	return &Callback{
		TransStatus:      form.Get("transStatus"),
		CallbackPassword: form.Get("callbackPW"),
		OrderID:          form.Get("cartId"),
		InstanceID:       form.Get("instId"),
		TransactionID:    form.Get("transId"),
		Message:          query.Get("msg"),
	}
}

// StatusLabel classifies transStatus for the order note.
func (c *Callback) StatusLabel() string {
	switch c.TransStatus {
	case TransStatusSuccess:
		return "Successful"
	case TransStatusCancelled:
		return "Cancelled"
	default:
		return "n/a"
	}
}

// ValidateCallback runs the instance-id and password integrity checks in
// order, each a distinct failure. The order-existence check happens before
// this, at the point the order is loaded.
func ValidateCallback(cb *Callback, settings *domain.Settings) error {
	localInstance := strings.TrimSpace(settings.InstanceID)
	if localInstance == "" {
		return &CallbackError{
			Code:    CallbackInstanceNotConfigured,
			Message: "WorldPay instance ID is not configured",
		}
	}

	callbackInstance := strings.TrimSpace(cb.InstanceID)
	if callbackInstance == "" {
		return &CallbackError{
			Code:    CallbackInstanceMissing,
			Message: "callback carries no instance ID",
		}
	}

	if localInstance != callbackInstance {
		return &CallbackError{
			Code:    CallbackInstanceMismatch,
			Message: "callback instance ID does not match the configured instance ID",
		}
	}

	if strings.TrimSpace(cb.CallbackPassword) != strings.TrimSpace(settings.CallbackPassword) {
		return &CallbackError{
			Code:    CallbackPasswordMismatch,
			Message: "callback password does not match the configured password",
		}
	}

	return nil
}
