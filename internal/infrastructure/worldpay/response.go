package worldpay

import "strconv"

// PaymentResponse is the gateway's JSON reply to any payment operation.
// The success flag is authoritative; the HTTP status code is not.
type PaymentResponse struct {
	Success          bool         `json:"success"`
	Result           string       `json:"result"`
	ResponseCode     int          `json:"responseCode"`
	Message          string       `json:"message"`
	ResponseDateTime string       `json:"responseDateTime"`
	Transaction      *Transaction `json:"transaction"`
}

// Transaction is present only on successful responses.
type Transaction struct {
	TransactionID     int64  `json:"transactionId"`
	AuthorizationCode string `json:"authorizationCode"`
	AvsResult         string `json:"avsResult"`
}

// TransactionIDString is the transaction id as the storefront stores it.
func (t *Transaction) TransactionIDString() string {
	return strconv.FormatInt(t.TransactionID, 10)
}
