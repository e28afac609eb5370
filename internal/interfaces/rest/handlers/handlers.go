package handlers

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/application/processor"
	"github.com/shopfront/payments-worldpay/internal/config"
	"github.com/shopfront/payments-worldpay/internal/interfaces/rest"
)

// Handlers serves the plugin's storefront pages and the gateway callback.
type Handlers struct {
	settings  application.SettingsStore
	orders    application.OrderRepository
	callbacks *application.CallbackService
	selector  *processor.Selector
	templates *rest.Templates
	store     config.StoreConfig
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewHandlers(
	settings application.SettingsStore,
	orders application.OrderRepository,
	callbacks *application.CallbackService,
	selector *processor.Selector,
	templates *rest.Templates,
	store config.StoreConfig,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		settings:  settings,
		orders:    orders,
		callbacks: callbacks,
		selector:  selector,
		templates: templates,
		store:     store,
		validate:  validator.New(),
		logger:    logger,
	}
}
