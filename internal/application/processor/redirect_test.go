package processor_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/application/processor"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redirectSettings() *domain.Settings {
	return &domain.Settings{
		IntegrationMode:  domain.ModeRedirect,
		UseSandbox:       true,
		InstanceID:       "211616",
		CallbackPassword: "cb-pass",
	}
}

func newRedirectProcessor(settings *domain.Settings) (*processor.RedirectProcessor, *application.MockGatewayClient) {
	gateway := &application.MockGatewayClient{}
	proc := processor.NewRedirect(processor.Deps{
		Settings: application.NewMockSettingsStore(settings),
		Currency: application.NewCurrencyService(&application.MockCurrencyRepository{
			Currencies: map[string]*domain.Currency{
				"USD": {Code: "USD", UsdRate: 1, IsPrimary: true},
			},
		}),
		Gateway: gateway,
		Store: worldpay.StoreContext{
			Name:        "Test Store",
			Locale:      "en-US",
			CallbackURL: "https://store.example/Plugins/PaymentWorldPay/Return",
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return proc, gateway
}

func TestRedirectProcessPayment_PendingWithoutGatewayCall(t *testing.T) {
	proc, gateway := newRedirectProcessor(redirectSettings())

	result, err := proc.ProcessPayment(context.Background(), &processor.ProcessPaymentRequest{
		CustomerID: 7,
		OrderTotal: domain.Money{Cents: 4250, Currency: "USD"},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, result.NewPaymentStatus)
	assert.Empty(t, gateway.Requests())
}

func TestRedirectPostProcessPayment_BuildsHostedForm(t *testing.T) {
	proc, _ := newRedirectProcessor(redirectSettings())

	order := &domain.Order{
		ID:         42,
		CustomerID: 7,
		Total:      domain.Money{Cents: 4250, Currency: "USD"},
		Status:     domain.PaymentPending,
		BillingAddress: domain.Address{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
	}

	form, err := proc.PostProcessPayment(context.Background(), order)

	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Equal(t, worldpay.HostedTestURL, form.URL)
	assert.Equal(t, "211616", form.Field("instId"))
	assert.Equal(t, "42", form.Field("cartId"))
	assert.Equal(t, "USD", form.Field("currency"))
	assert.Equal(t, "42.50", form.Field("amount"))
	assert.Equal(t, "https://store.example/Plugins/PaymentWorldPay/Return", form.Field("MC_callback"))
}

func TestRedirectUnsupportedOperations(t *testing.T) {
	proc, gateway := newRedirectProcessor(redirectSettings())
	order := &domain.Order{ID: 42, Status: domain.PaymentAuthorized}

	_, err := proc.Capture(context.Background(), order)
	require.ErrorIs(t, err, application.ErrCaptureNotSupported)

	_, err = proc.Refund(context.Background(), &processor.RefundPaymentRequest{Order: order})
	require.ErrorIs(t, err, application.ErrRefundNotSupported)

	_, err = proc.Void(context.Background(), order)
	require.ErrorIs(t, err, application.ErrVoidNotSupported)

	_, err = proc.ProcessRecurring(context.Background(), &processor.ProcessPaymentRequest{})
	require.ErrorIs(t, err, application.ErrRecurringNotSupported)

	assert.Empty(t, gateway.Requests())
}

func TestRedirectCanRePostProcessPayment(t *testing.T) {
	proc, _ := newRedirectProcessor(redirectSettings())

	tests := []struct {
		name   string
		status domain.PaymentStatus
		age    time.Duration
		want   bool
	}{
		{"pending and old enough", domain.PaymentPending, 2 * time.Minute, true},
		{"pending exactly at threshold", domain.PaymentPending, time.Minute + time.Second, true},
		{"pending but too fresh", domain.PaymentPending, 10 * time.Second, false},
		{"already paid", domain.PaymentPaid, 2 * time.Minute, false},
		{"authorized", domain.PaymentAuthorized, 2 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{
				Status:    tt.status,
				CreatedAt: time.Now().Add(-tt.age),
			}
			assert.Equal(t, tt.want, proc.CanRePostProcessPayment(order))
		})
	}
}

func TestSelector_PicksProcessorByMode(t *testing.T) {
	deps := processor.Deps{
		Settings: application.NewMockSettingsStore(redirectSettings()),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	selector := processor.NewSelector(deps)
	proc, err := selector.Processor(context.Background())
	require.NoError(t, err)
	_, ok := proc.(*processor.RedirectProcessor)
	assert.True(t, ok)

	deps.Settings = application.NewMockSettingsStore(&domain.Settings{IntegrationMode: domain.ModeDirect})
	selector = processor.NewSelector(deps)
	proc, err = selector.Processor(context.Background())
	require.NoError(t, err)
	_, ok = proc.(*processor.DirectProcessor)
	assert.True(t, ok)

	deps.Settings = application.NewMockSettingsStore(&domain.Settings{IntegrationMode: "carrier-pigeon"})
	selector = processor.NewSelector(deps)
	_, err = selector.Processor(context.Background())
	require.Error(t, err)
}

func TestHandlingFee(t *testing.T) {
	settings := redirectSettings()
	settings.AdditionalFeeCents = 150
	settings.AdditionalFeePercentage = true
	proc, _ := newRedirectProcessor(settings)

	fee, percentage, err := proc.HandlingFee(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(150), fee.Cents)
	assert.Equal(t, "USD", fee.Currency)
	assert.True(t, percentage)
}
