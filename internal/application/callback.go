package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// CallbackService turns a validated hosted-page callback into an order
// note and, when allowed, a paid transition. Integrity failures abort
// before any order mutation.
type CallbackService struct {
	settings   SettingsStore
	orders     OrderRepository
	processing OrderProcessing
	logger     *slog.Logger
}

func NewCallbackService(
	settings SettingsStore,
	orders OrderRepository,
	processing OrderProcessing,
	logger *slog.Logger,
) *CallbackService {
	return &CallbackService{
		settings:   settings,
		orders:     orders,
		processing: processing,
		logger:     logger,
	}
}

// Handle validates and applies one callback. A repeated callback for an
// already-paid order appends its note but does not re-mark payment; the
// can-mark-paid predicate owns that idempotency.
func (s *CallbackService) Handle(ctx context.Context, cb *worldpay.Callback) (*domain.Order, error) {
	orderID, err := strconv.ParseInt(cb.OrderID, 10, 64)
	if err != nil {
		return nil, &worldpay.CallbackError{
			Code:    worldpay.CallbackOrderNotFound,
			Message: fmt.Sprintf("cart ID %q is not an order ID", cb.OrderID),
		}
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, &worldpay.CallbackError{
				Code:    worldpay.CallbackOrderNotFound,
				Message: fmt.Sprintf("no order with ID %d", orderID),
			}
		}
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	if err := worldpay.ValidateCallback(cb, settings); err != nil {
		s.logger.Warn("worldpay callback rejected",
			"order_id", orderID,
			"error", err,
		)
		return nil, err
	}

	label := cb.StatusLabel()
	note := fmt.Sprintf(
		"WorldPay callback for order %d: transaction %s, status %s, message %q",
		order.ID, cb.TransactionID, label, cb.Message,
	)
	if err := s.orders.AddNote(ctx, NewOrderNote(order.ID, note)); err != nil {
		return nil, fmt.Errorf("append order note: %w", err)
	}

	if cb.TransStatus == worldpay.TransStatusSuccess && s.processing.CanMarkOrderAsPaid(order) {
		if err := s.processing.MarkOrderAsPaid(ctx, order); err != nil {
			return nil, err
		}
	}

	s.logger.Info("worldpay callback processed",
		"order_id", order.ID,
		"trans_status", cb.TransStatus,
		"transaction_id", cb.TransactionID,
	)
	return order, nil
}
