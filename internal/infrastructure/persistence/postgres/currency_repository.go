package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

type CurrencyRepository struct {
	db *DB
}

func NewCurrencyRepository(db *DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT code, usd_rate, is_primary FROM currencies WHERE code = $1`

	var c domain.Currency
	err := r.db.Pool.QueryRow(ctx, query, code).Scan(&c.Code, &c.UsdRate, &c.IsPrimary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to load currency %q: %w", code, err)
	}
	return &c, nil
}

func (r *CurrencyRepository) Primary(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT code, usd_rate, is_primary FROM currencies WHERE is_primary LIMIT 1`

	var c domain.Currency
	err := r.db.Pool.QueryRow(ctx, query).Scan(&c.Code, &c.UsdRate, &c.IsPrimary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to load primary currency: %w", err)
	}
	return &c, nil
}

// Upsert writes a currency row. Used by fixtures and tests.
func (r *CurrencyRepository) Upsert(ctx context.Context, currency *domain.Currency) error {
	query := `
		INSERT INTO currencies (code, usd_rate, is_primary)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET usd_rate = EXCLUDED.usd_rate, is_primary = EXCLUDED.is_primary
	`

	_, err := r.db.Pool.Exec(ctx, query, currency.Code, currency.UsdRate, currency.IsPrimary)
	if err != nil {
		return fmt.Errorf("failed to upsert currency %q: %w", currency.Code, err)
	}
	return nil
}
