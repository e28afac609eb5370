package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// rePostDelay guards against the race between the initial redirect and the
// gateway callback: a shopper may only retry a pending payment once the
// callback has had a minute to arrive.
const rePostDelay = time.Minute

// RedirectProcessor drives the classic hosted payment page. Payment is
// collected on WorldPay's site, so checkout leaves the order pending and
// the follow-up operations are unsupported.
type RedirectProcessor struct {
	deps Deps
}

func NewRedirect(deps Deps) *RedirectProcessor {
	return &RedirectProcessor{deps: deps}
}

var _ PaymentProcessor = (*RedirectProcessor)(nil)

// ProcessPayment performs no gateway call; the order stays pending until
// the callback arrives.
func (p *RedirectProcessor) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error) {
	return &ProcessPaymentResult{NewPaymentStatus: domain.PaymentPending}, nil
}

// PostProcessPayment builds the auto-submitting form that sends the
// shopper to the hosted payment page.
func (p *RedirectProcessor) PostProcessPayment(ctx context.Context, order *domain.Order) (*worldpay.RedirectForm, error) {
	settings, err := p.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	currencyCode, err := p.deps.Currency.PrimaryCurrencyCode(ctx)
	if err != nil {
		return nil, err
	}

	store := p.deps.Store
	store.CurrencyCode = currencyCode

	return worldpay.BuildHostedForm(order, settings, store), nil
}

func (p *RedirectProcessor) Capture(ctx context.Context, order *domain.Order) (*CaptureResult, error) {
	return nil, application.ErrCaptureNotSupported
}

func (p *RedirectProcessor) Refund(ctx context.Context, req *RefundPaymentRequest) (*RefundResult, error) {
	return nil, application.ErrRefundNotSupported
}

func (p *RedirectProcessor) Void(ctx context.Context, order *domain.Order) (*VoidResult, error) {
	return nil, application.ErrVoidNotSupported
}

func (p *RedirectProcessor) ProcessRecurring(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error) {
	return nil, application.ErrRecurringNotSupported
}

// CanRePostProcessPayment allows re-running the redirect only for orders
// still pending after the callback grace period.
func (p *RedirectProcessor) CanRePostProcessPayment(order *domain.Order) bool {
	if order.Status != domain.PaymentPending {
		return false
	}
	return time.Since(order.CreatedAt) >= rePostDelay
}

func (p *RedirectProcessor) HandlingFee(ctx context.Context) (domain.Money, bool, error) {
	return handlingFee(ctx, p.deps.Settings, p.deps.Currency)
}
