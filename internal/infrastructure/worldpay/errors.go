package worldpay

import (
	"errors"
	"fmt"
)

// ErrNoResponse marks a transport failure or an undecodable gateway reply.
// Callers see this sentinel instead of raw transport errors; the detail is
// logged at the call site.
var ErrNoResponse = errors.New("no response from payment gateway")

// GatewayError is a business failure reported by the gateway itself
// (success:false in an otherwise well-formed response).
type GatewayError struct {
	Result       string
	ResponseCode int
	Message      string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway declined [%s/%d]: %s", e.Result, e.ResponseCode, e.Message)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

// CallbackErrorCode identifies which integrity check a hosted-page callback
// failed.
type CallbackErrorCode string

const (
	CallbackOrderNotFound         CallbackErrorCode = "ORDER_NOT_FOUND"
	CallbackInstanceNotConfigured CallbackErrorCode = "INSTANCE_NOT_CONFIGURED"
	CallbackInstanceMissing       CallbackErrorCode = "INSTANCE_MISSING"
	CallbackInstanceMismatch      CallbackErrorCode = "INSTANCE_MISMATCH"
	CallbackPasswordMismatch      CallbackErrorCode = "PASSWORD_MISMATCH"
)

// CallbackError aborts callback processing before any order mutation.
type CallbackError struct {
	Code    CallbackErrorCode
	Message string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback rejected [%s]: %s", e.Code, e.Message)
}

func IsCallbackError(err error) (*CallbackError, bool) {
	var cbErr *CallbackError
	ok := errors.As(err, &cbErr)
	return cbErr, ok
}
