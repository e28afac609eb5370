package processor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// DirectProcessor drives the server-to-server JSON payments API.
type DirectProcessor struct {
	deps Deps
}

func NewDirect(deps Deps) *DirectProcessor {
	return &DirectProcessor{deps: deps}
}

var _ PaymentProcessor = (*DirectProcessor)(nil)

// ProcessPayment authorizes (or charges, per the configured transaction
// mode) the order total in USD against the shopper's card.
func (p *DirectProcessor) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error) {
	settings, err := p.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	usd, err := p.deps.Currency.ConvertToUSD(ctx, req.OrderTotal)
	if err != nil {
		return nil, err
	}

	customer, err := p.deps.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", req.CustomerID, err)
	}

	card := buildCard(req.Card, customer.BillingAddress)

	var gwReq worldpay.Request
	if settings.TransactMode == domain.TransactAuthorizeAndCapture {
		gwReq = &worldpay.ChargeRequest{Amount: usd.Dollars(), Card: card}
	} else {
		gwReq = &worldpay.AuthorizeRequest{Amount: usd.Dollars(), Card: card}
	}

	resp, err := p.post(ctx, settings, gwReq)
	if err != nil {
		return nil, err
	}

	result := &ProcessPaymentResult{AvsResult: resp.Transaction.AvsResult}
	txID := resp.Transaction.TransactionIDString()
	if settings.TransactMode == domain.TransactAuthorizeAndCapture {
		result.NewPaymentStatus = domain.PaymentPaid
		result.CaptureTransactionID = txID + "," + resp.Transaction.AuthorizationCode
	} else {
		result.NewPaymentStatus = domain.PaymentAuthorized
		result.AuthorizationTransactionID = txID
		result.AuthorizationTransactionCode = resp.Transaction.AuthorizationCode
	}

	return result, nil
}

// PostProcessPayment is a no-op: the direct integration never redirects.
func (p *DirectProcessor) PostProcessPayment(ctx context.Context, order *domain.Order) (*worldpay.RedirectForm, error) {
	return nil, nil
}

// Capture collects a prior authorization.
func (p *DirectProcessor) Capture(ctx context.Context, order *domain.Order) (*CaptureResult, error) {
	settings, err := p.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	usd, err := p.deps.Currency.ConvertToUSD(ctx, order.Total)
	if err != nil {
		return nil, err
	}

	txID, err := parseTransactionID(order.AuthorizationTransactionID)
	if err != nil {
		return nil, err
	}

	resp, err := p.post(ctx, settings, &worldpay.CaptureRequest{
		Amount:        usd.Dollars(),
		TransactionID: txID,
	})
	if err != nil {
		return nil, err
	}

	return &CaptureResult{
		NewPaymentStatus:     domain.PaymentPaid,
		CaptureTransactionID: resp.Transaction.TransactionIDString() + "," + resp.Transaction.AuthorizationCode,
	}, nil
}

// Refund returns captured funds. The payment status only moves when the
// gateway reports success.
func (p *DirectProcessor) Refund(ctx context.Context, req *RefundPaymentRequest) (*RefundResult, error) {
	settings, err := p.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	usd, err := p.deps.Currency.ConvertToUSD(ctx, req.Amount)
	if err != nil {
		return nil, err
	}

	txID, err := followUpTransactionID(req.Order)
	if err != nil {
		return nil, err
	}

	if _, err := p.post(ctx, settings, &worldpay.RefundRequest{
		Amount:        usd.Dollars(),
		TransactionID: txID,
	}); err != nil {
		return nil, err
	}

	status := domain.PaymentRefunded
	if req.IsPartial {
		status = domain.PaymentPartiallyRefunded
	}
	return &RefundResult{NewPaymentStatus: status}, nil
}

// Void cancels an authorization. The payment status only moves when the
// gateway reports success.
func (p *DirectProcessor) Void(ctx context.Context, order *domain.Order) (*VoidResult, error) {
	settings, err := p.deps.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	txID, err := followUpTransactionID(order)
	if err != nil {
		return nil, err
	}

	if _, err := p.post(ctx, settings, &worldpay.VoidRequest{TransactionID: txID}); err != nil {
		return nil, err
	}

	return &VoidResult{NewPaymentStatus: domain.PaymentVoided}, nil
}

func (p *DirectProcessor) ProcessRecurring(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error) {
	return nil, application.ErrRecurringNotSupported
}

// CanRePostProcessPayment is always false: there is no redirect to re-run.
func (p *DirectProcessor) CanRePostProcessPayment(order *domain.Order) bool {
	return false
}

func (p *DirectProcessor) HandlingFee(ctx context.Context) (domain.Money, bool, error) {
	return handlingFee(ctx, p.deps.Settings, p.deps.Currency)
}

// post performs one gateway round trip and normalizes the outcome: a
// declined response becomes a GatewayError, a success without transaction
// detail is treated as no response.
func (p *DirectProcessor) post(ctx context.Context, settings *domain.Settings, req worldpay.Request) (*worldpay.PaymentResponse, error) {
	resp, err := p.deps.Gateway.Post(ctx, settings, req)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, &worldpay.GatewayError{
			Result:       resp.Result,
			ResponseCode: resp.ResponseCode,
			Message:      resp.Message,
		}
	}

	if resp.Transaction == nil {
		p.deps.Logger.Error("worldpay success response without transaction detail",
			"path", req.Path(),
			"result", resp.Result,
		)
		return nil, fmt.Errorf("%w: success response without transaction detail", worldpay.ErrNoResponse)
	}

	return resp, nil
}

func buildCard(input CardInput, billing domain.Address) *worldpay.Card {
	return &worldpay.Card{
		Number:         input.Number,
		CVV:            input.CVV,
		ExpirationDate: input.expirationDate(),
		FirstName:      billing.FirstName,
		LastName:       billing.LastName,
		Address: &worldpay.Address{
			Line1: billing.Address1,
			City:  billing.City,
			Zip:   billing.Zip,
		},
	}
}

// followUpTransactionID resolves the gateway transaction a refund or void
// targets. Capture references are comma-composite
// ("transactionId,authorizationCode"); the id is the part before the comma.
// Orders captured through Charge carry only the capture reference, orders
// still authorized carry only the authorization reference.
func followUpTransactionID(order *domain.Order) (int64, error) {
	ref := order.CaptureTransactionID
	if ref != "" {
		ref, _, _ = strings.Cut(ref, ",")
	} else {
		ref = order.AuthorizationTransactionID
	}
	return parseTransactionID(ref)
}

func parseTransactionID(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, errors.New("order carries no gateway transaction reference")
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("gateway transaction reference %q is not numeric", ref)
	}
	return id, nil
}
