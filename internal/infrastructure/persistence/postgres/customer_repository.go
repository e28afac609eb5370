package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `
		SELECT id, email,
		       billing_first_name, billing_last_name, billing_address1, billing_address2,
		       billing_city, billing_state, billing_zip, billing_country_code
		FROM customers WHERE id = $1
	`

	var (
		c       domain.Customer
		billing domain.Address
	)
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Email,
		&billing.FirstName, &billing.LastName, &billing.Address1, &billing.Address2,
		&billing.City, &billing.StateAbbrev, &billing.Zip, &billing.CountryCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer %d: %w", id, err)
	}

	billing.Email = c.Email
	c.BillingAddress = billing
	return &c, nil
}

// Create inserts a customer row. Used by fixtures and tests.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (
			id, email,
			billing_first_name, billing_last_name, billing_address1, billing_address2,
			billing_city, billing_state, billing_zip, billing_country_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	billing := customer.BillingAddress
	_, err := r.db.Pool.Exec(ctx, query,
		customer.ID,
		customer.Email,
		billing.FirstName, billing.LastName, billing.Address1, billing.Address2,
		billing.City, billing.StateAbbrev, billing.Zip, billing.CountryCode,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer %d: %w", customer.ID, err)
	}
	return nil
}
