package application

import "errors"

// Static unsupported-operation errors. These are reported without any
// gateway call being attempted.
var (
	ErrRecurringNotSupported = errors.New("recurring payments are not supported")
	ErrCaptureNotSupported   = errors.New("capture is not supported by the hosted redirect method")
	ErrRefundNotSupported    = errors.New("refund is not supported by the hosted redirect method")
	ErrVoidNotSupported      = errors.New("void is not supported by the hosted redirect method")
)

// Not-found errors shared by the port implementations.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCurrencyNotFound = errors.New("currency not found")
)
