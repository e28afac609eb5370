package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
	id, customer_id, total_cents, currency, payment_status,
	authorization_transaction_id, authorization_transaction_code, capture_transaction_id,
	billing_first_name, billing_last_name, billing_email, billing_company,
	billing_address1, billing_address2, billing_city, billing_state, billing_zip,
	billing_country_code, billing_country_name, billing_phone,
	shipping_required,
	shipping_first_name, shipping_last_name, shipping_address1, shipping_address2,
	shipping_city, shipping_zip, shipping_country_code,
	created_at, paid_at`

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.db.Pool.QueryRow(ctx, query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders SET
			payment_status = $2,
			authorization_transaction_id = $3,
			authorization_transaction_code = $4,
			capture_transaction_id = $5,
			paid_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		order.ID,
		string(order.Status),
		order.AuthorizationTransactionID,
		order.AuthorizationTransactionCode,
		order.CaptureTransactionID,
		order.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return application.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) AddNote(ctx context.Context, note *domain.OrderNote) error {
	query := `
		INSERT INTO order_notes (id, order_id, note, display_to_customer, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		note.ID,
		note.OrderID,
		note.Note,
		note.DisplayToCustomer,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add note to order %d: %w", note.OrderID, err)
	}

	return nil
}

// NotesByOrderID lists an order's notes, newest first.
func (r *OrderRepository) NotesByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderNote, error) {
	query := `
		SELECT id, order_id, note, display_to_customer, created_at
		FROM order_notes WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var notes []*domain.OrderNote
	for rows.Next() {
		var n domain.OrderNote
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Note, &n.DisplayToCustomer, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// Create inserts a full order row. Used by fixtures and the storefront's
// order placement, not by the payment flow itself.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)
	`

	billing := order.BillingAddress
	shipping := domain.Address{}
	if order.ShippingAddress != nil {
		shipping = *order.ShippingAddress
	}

	_, err := r.db.Pool.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.Total.Cents,
		order.Total.Currency,
		string(order.Status),
		order.AuthorizationTransactionID,
		order.AuthorizationTransactionCode,
		order.CaptureTransactionID,
		billing.FirstName, billing.LastName, billing.Email, billing.Company,
		billing.Address1, billing.Address2, billing.City, billing.StateAbbrev, billing.Zip,
		billing.CountryCode, billing.CountryName, billing.Phone,
		order.ShippingRequired,
		shipping.FirstName, shipping.LastName, shipping.Address1, shipping.Address2,
		shipping.City, shipping.Zip, shipping.CountryCode,
		order.CreatedAt,
		order.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order %d: %w", order.ID, err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o        domain.Order
		status   string
		billing  domain.Address
		shipping domain.Address
	)

	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.Total.Cents,
		&o.Total.Currency,
		&status,
		&o.AuthorizationTransactionID,
		&o.AuthorizationTransactionCode,
		&o.CaptureTransactionID,
		&billing.FirstName, &billing.LastName, &billing.Email, &billing.Company,
		&billing.Address1, &billing.Address2, &billing.City, &billing.StateAbbrev, &billing.Zip,
		&billing.CountryCode, &billing.CountryName, &billing.Phone,
		&o.ShippingRequired,
		&shipping.FirstName, &shipping.LastName, &shipping.Address1, &shipping.Address2,
		&shipping.City, &shipping.Zip, &shipping.CountryCode,
		&o.CreatedAt,
		&o.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = domain.PaymentStatus(status)
	o.BillingAddress = billing
	if o.ShippingRequired {
		o.ShippingAddress = &shipping
	}
	return &o, nil
}
