// Package worldpay implements the wire protocol of both WorldPay
// integrations: the SecureNet-style JSON payments API and the classic
// hosted payment page with its browser callback.
package worldpay

// Address carries the minimal billing address fields the JSON API accepts.
type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	Zip   string `json:"zip"`
}

// Card is the raw card input for Authorize and Charge. It lives only for
// the duration of a single request and is never persisted.
type Card struct {
	Number         string   `json:"number"`
	CVV            string   `json:"cvv"`
	ExpirationDate string   `json:"expirationDate"` // MM/YYYY
	Address        *Address `json:"address,omitempty"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
}

// DeveloperApplication identifies the merchant's integration and is stamped
// onto every outbound request by the client.
type DeveloperApplication struct {
	DeveloperID int    `json:"developerId"`
	Version     string `json:"version"`
}

// Request is one of the five payment operations. The set is closed: each
// variant serializes exactly the fields valid for it and nothing else, and
// knows its own endpoint path.
type Request interface {
	Path() string
	stampDeveloper(app DeveloperApplication)
}

type developerStamp struct {
	DeveloperApplication *DeveloperApplication `json:"developerApplication,omitempty"`
}

func (d *developerStamp) stampDeveloper(app DeveloperApplication) {
	d.DeveloperApplication = &app
}

// AuthorizeRequest reserves funds without capturing them.
type AuthorizeRequest struct {
	Amount float64 `json:"amount"`
	Card   *Card   `json:"card"`
	developerStamp
}

func (*AuthorizeRequest) Path() string { return "/payments/Authorize" }

// ChargeRequest authorizes and captures in a single call.
type ChargeRequest struct {
	Amount float64 `json:"amount"`
	Card   *Card   `json:"card"`
	developerStamp
}

func (*ChargeRequest) Path() string { return "/payments/Charge" }

// CaptureRequest collects previously authorized funds.
type CaptureRequest struct {
	Amount        float64 `json:"amount"`
	TransactionID int64   `json:"transactionId"`
	developerStamp
}

func (*CaptureRequest) Path() string { return "/payments/Capture" }

// RefundRequest returns captured funds.
type RefundRequest struct {
	Amount        float64 `json:"amount"`
	TransactionID int64   `json:"transactionId"`
	developerStamp
}

func (*RefundRequest) Path() string { return "/payments/Refund" }

// VoidRequest cancels an authorization. It carries no amount.
type VoidRequest struct {
	TransactionID int64 `json:"transactionId"`
	developerStamp
}

func (*VoidRequest) Path() string { return "/payments/Void" }
