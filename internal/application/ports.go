// Package application wires the payment processors to the storefront's
// collaborators through narrow ports.
package application

import (
	"context"

	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// SettingsStore loads and saves the merchant's gateway configuration.
// ClearCache drops any cached copy so the next Load sees fresh values;
// Delete removes the persisted configuration at uninstall.
type SettingsStore interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
	Delete(ctx context.Context) error
	ClearCache(ctx context.Context) error
}

// OrderRepository is the port to the storefront's order storage.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	AddNote(ctx context.Context, note *domain.OrderNote) error
}

// OrderProcessing exposes the storefront's order lifecycle predicates. The
// can-mark-paid predicate is what makes repeated callbacks idempotent.
type OrderProcessing interface {
	CanMarkOrderAsPaid(order *domain.Order) bool
	MarkOrderAsPaid(ctx context.Context, order *domain.Order) error
}

// CurrencyConverter converts storefront amounts into the USD the gateway
// expects.
type CurrencyConverter interface {
	ConvertToUSD(ctx context.Context, amount domain.Money) (domain.Money, error)
	PrimaryCurrencyCode(ctx context.Context) (string, error)
}

// CurrencyRepository reads the storefront's exchange-rate table.
type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)
	Primary(ctx context.Context) (*domain.Currency, error)
}

// CustomerRepository looks up the stored customer a card payment draws its
// billing address from.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// LocaleStore registers and removes the plugin's locale resources.
type LocaleStore interface {
	AddOrUpdate(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// GatewayClient is the port for the JSON payments API round trip.
type GatewayClient interface {
	Post(ctx context.Context, settings *domain.Settings, req worldpay.Request) (*worldpay.PaymentResponse, error)
}
