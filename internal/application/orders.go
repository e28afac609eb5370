package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

// OrderService implements the storefront's order lifecycle operations the
// plugin depends on.
type OrderService struct {
	orders OrderRepository
	logger *slog.Logger
}

func NewOrderService(orders OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// CanMarkOrderAsPaid reports whether the order may transition to paid.
// Already-paid and terminal orders return false, which is what keeps a
// repeated gateway callback from re-marking payment.
func (s *OrderService) CanMarkOrderAsPaid(order *domain.Order) bool {
	if order.Total.Cents <= 0 {
		return false
	}
	switch order.Status {
	case domain.PaymentPending, domain.PaymentAuthorized:
		return true
	default:
		return false
	}
}

// MarkOrderAsPaid transitions the order to paid and persists it. Callers
// must check CanMarkOrderAsPaid first.
func (s *OrderService) MarkOrderAsPaid(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	order.Status = domain.PaymentPaid
	order.PaidAt = &now

	if err := s.orders.Update(ctx, order); err != nil {
		return fmt.Errorf("mark order %d as paid: %w", order.ID, err)
	}

	s.logger.Info("order marked as paid", "order_id", order.ID)
	return nil
}

// NewOrderNote builds a non-customer-visible note.
func NewOrderNote(orderID int64, note string) *domain.OrderNote {
	return &domain.OrderNote{
		ID:                uuid.New().String(),
		OrderID:           orderID,
		Note:              note,
		DisplayToCustomer: false,
		CreatedAt:         time.Now().UTC(),
	}
}
