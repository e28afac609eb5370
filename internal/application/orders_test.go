package application_test

import (
	"context"
	"testing"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMarkOrderAsPaid(t *testing.T) {
	service := application.NewOrderService(application.NewMockOrderRepository(), testLogger())

	tests := []struct {
		name   string
		status domain.PaymentStatus
		cents  int64
		want   bool
	}{
		{"pending order", domain.PaymentPending, 100, true},
		{"authorized order", domain.PaymentAuthorized, 100, true},
		{"already paid", domain.PaymentPaid, 100, false},
		{"refunded", domain.PaymentRefunded, 100, false},
		{"partially refunded", domain.PaymentPartiallyRefunded, 100, false},
		{"voided", domain.PaymentVoided, 100, false},
		{"zero total", domain.PaymentPending, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{
				Status: tt.status,
				Total:  domain.Money{Cents: tt.cents, Currency: "USD"},
			}
			assert.Equal(t, tt.want, service.CanMarkOrderAsPaid(order))
		})
	}
}

func TestMarkOrderAsPaid(t *testing.T) {
	order := &domain.Order{
		ID:     42,
		Status: domain.PaymentPending,
		Total:  domain.Money{Cents: 100, Currency: "USD"},
	}
	orders := application.NewMockOrderRepository(order)
	service := application.NewOrderService(orders, testLogger())

	err := service.MarkOrderAsPaid(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, order.Status)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, 1, orders.UpdateCalls)
}

func TestConvertToUSD(t *testing.T) {
	service := application.NewCurrencyService(&application.MockCurrencyRepository{
		Currencies: map[string]*domain.Currency{
			"USD": {Code: "USD", UsdRate: 1, IsPrimary: true},
			"GBP": {Code: "GBP", UsdRate: 1.27},
		},
	})
	ctx := context.Background()

	usd, err := service.ConvertToUSD(ctx, domain.Money{Cents: 4250, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, int64(4250), usd.Cents)

	converted, err := service.ConvertToUSD(ctx, domain.Money{Cents: 1000, Currency: "GBP"})
	require.NoError(t, err)
	assert.Equal(t, int64(1270), converted.Cents)
	assert.Equal(t, "USD", converted.Currency)

	_, err = service.ConvertToUSD(ctx, domain.Money{Cents: 1000, Currency: "XYZ"})
	require.ErrorIs(t, err, application.ErrCurrencyNotFound)
}

func TestPrimaryCurrencyCode(t *testing.T) {
	service := application.NewCurrencyService(&application.MockCurrencyRepository{
		Currencies: map[string]*domain.Currency{
			"EUR": {Code: "EUR", UsdRate: 1.08, IsPrimary: true},
		},
	})

	code, err := service.PrimaryCurrencyCode(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "EUR", code)
}
