package application

import (
	"context"
	"fmt"
	"math"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// CurrencyService converts storefront amounts to the USD the gateway
// expects, using the storefront's exchange-rate table.
type CurrencyService struct {
	currencies CurrencyRepository
}

func NewCurrencyService(currencies CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencies: currencies}
}

func (s *CurrencyService) ConvertToUSD(ctx context.Context, amount domain.Money) (domain.Money, error) {
	if amount.Currency == "USD" {
		return amount, nil
	}

	currency, err := s.currencies.GetByCode(ctx, amount.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("look up currency %q: %w", amount.Currency, err)
	}

	cents := int64(math.Round(float64(amount.Cents) * currency.UsdRate))
	return domain.Money{Cents: cents, Currency: "USD"}, nil
}

func (s *CurrencyService) PrimaryCurrencyCode(ctx context.Context) (string, error) {
	currency, err := s.currencies.Primary(ctx)
	if err != nil {
		return "", fmt.Errorf("look up primary currency: %w", err)
	}
	return currency.Code, nil
}
