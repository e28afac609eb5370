package domain

// IntegrationMode selects which of the two WorldPay integrations handles
// the payment lifecycle.
type IntegrationMode string

const (
	// ModeDirect is the server-to-server SecureNet JSON API.
	ModeDirect IntegrationMode = "direct"
	// ModeRedirect is the classic hosted payment page.
	ModeRedirect IntegrationMode = "redirect"
)

// TransactMode controls whether a direct payment is authorized only or
// authorized and captured in one call.
type TransactMode string

const (
	TransactAuthorize           TransactMode = "authorize"
	TransactAuthorizeAndCapture TransactMode = "authorize_and_capture"
)

// Settings is the merchant configuration for both WorldPay integrations.
// It is owned by the storefront's settings store: written by the admin
// configuration form, read on every gateway call, never mutated by the
// gateway client itself.
type Settings struct {
	IntegrationMode IntegrationMode
	UseSandbox      bool
	TransactMode    TransactMode

	AdditionalFeeCents      int64
	AdditionalFeePercentage bool

	// Direct (SecureNet JSON API) credentials.
	SecureNetID      string
	SecureKey        string
	EndPoint         string
	DeveloperID      int
	DeveloperVersion string

	// Hosted redirect configuration.
	InstanceID          string
	CallbackPassword    string
	PaymentMethodFilter string
	CSSName             string
}

// DefaultSettings are the values written at plugin install.
func DefaultSettings() *Settings {
	return &Settings{
		IntegrationMode: ModeRedirect,
		UseSandbox:      true,
		TransactMode:    TransactAuthorize,
	}
}
