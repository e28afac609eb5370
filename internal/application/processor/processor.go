// Package processor implements the payment lifecycle the storefront
// expects, dispatching to either the direct JSON API or the hosted
// redirect integration depending on the configured mode.
package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// CardInput is the raw card data posted by the shopper. It never outlives
// the request it arrived in.
type CardInput struct {
	Number      string
	CVV         string
	ExpireMonth int
	ExpireYear  int
}

func (c CardInput) expirationDate() string {
	return fmt.Sprintf("%02d/%04d", c.ExpireMonth, c.ExpireYear)
}

// ProcessPaymentRequest carries what the storefront knows at checkout time.
type ProcessPaymentRequest struct {
	CustomerID int64
	OrderTotal domain.Money
	Card       CardInput
}

// ProcessPaymentResult is the storefront-facing outcome of a payment.
type ProcessPaymentResult struct {
	NewPaymentStatus             domain.PaymentStatus
	AuthorizationTransactionID   string
	AuthorizationTransactionCode string
	CaptureTransactionID         string
	AvsResult                    string
}

type CaptureResult struct {
	NewPaymentStatus     domain.PaymentStatus
	CaptureTransactionID string
}

type RefundPaymentRequest struct {
	Order     *domain.Order
	Amount    domain.Money
	IsPartial bool
}

type RefundResult struct {
	NewPaymentStatus domain.PaymentStatus
}

type VoidResult struct {
	NewPaymentStatus domain.PaymentStatus
}

// PaymentProcessor is the capability interface both integrations satisfy.
type PaymentProcessor interface {
	// ProcessPayment handles the initial payment at checkout.
	ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error)
	// PostProcessPayment builds the hosted-page redirect for methods that
	// need one; nil for server-to-server methods.
	PostProcessPayment(ctx context.Context, order *domain.Order) (*worldpay.RedirectForm, error)
	Capture(ctx context.Context, order *domain.Order) (*CaptureResult, error)
	Refund(ctx context.Context, req *RefundPaymentRequest) (*RefundResult, error)
	Void(ctx context.Context, order *domain.Order) (*VoidResult, error)
	ProcessRecurring(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error)
	// CanRePostProcessPayment reports whether the shopper may re-run the
	// redirect for a pending order.
	CanRePostProcessPayment(order *domain.Order) bool
	// HandlingFee is the configured additional fee and whether it applies
	// as a percentage.
	HandlingFee(ctx context.Context) (domain.Money, bool, error)
}

// Deps are the collaborators a processor draws on. Settings are loaded
// fresh on every operation; nothing is cached across calls.
type Deps struct {
	Settings  application.SettingsStore
	Customers application.CustomerRepository
	Currency  application.CurrencyConverter
	Gateway   application.GatewayClient
	Store     worldpay.StoreContext
	Logger    *slog.Logger
}

// Selector picks the processor implementation for the configured
// integration mode.
type Selector struct {
	deps Deps
}

func NewSelector(deps Deps) *Selector {
	return &Selector{deps: deps}
}

func (s *Selector) Processor(ctx context.Context) (PaymentProcessor, error) {
	settings, err := s.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	switch settings.IntegrationMode {
	case domain.ModeDirect:
		return NewDirect(s.deps), nil
	case domain.ModeRedirect:
		return NewRedirect(s.deps), nil
	default:
		return nil, fmt.Errorf("unknown integration mode %q", settings.IntegrationMode)
	}
}

// handlingFee reads the fee configuration shared by both implementations.
func handlingFee(ctx context.Context, settings application.SettingsStore, currency application.CurrencyConverter) (domain.Money, bool, error) {
	cfg, err := settings.Load(ctx)
	if err != nil {
		return domain.Money{}, false, fmt.Errorf("load gateway settings: %w", err)
	}

	code, err := currency.PrimaryCurrencyCode(ctx)
	if err != nil {
		return domain.Money{}, false, err
	}

	return domain.Money{Cents: cfg.AdditionalFeeCents, Currency: code}, cfg.AdditionalFeePercentage, nil
}
