package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/application/processor"
	"github.com/shopfront/payments-worldpay/internal/config"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/cache"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/persistence/postgres"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
	"github.com/shopfront/payments-worldpay/internal/interfaces/rest"
	"github.com/shopfront/payments-worldpay/internal/interfaces/rest/handlers"
)

func main() {
	root := &cobra.Command{
		Use:          "worldpay",
		Short:        "WorldPay payment plugin service",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), installCmd(), uninstallCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds everything a command needs after wiring.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *postgres.DB
	redis    *redis.Client
	settings application.SettingsStore
	locales  application.LocaleStore
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		locales: postgres.NewLocaleStore(db),
	}

	a.settings = postgres.NewSettingsStore(db)
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.settings = cache.NewSettingsCache(a.settings, a.redis, cfg.Redis.TTL, logger)
	}

	return a, nil
}

func (a *app) close() {
	a.db.Close()
	if a.redis != nil {
		a.redis.Close()
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the plugin HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				slog.Error("failed to start", "error", err)
				return err
			}
			defer a.close()

			cfg, logger := a.cfg, a.logger
			logger.Info("starting worldpay plugin service",
				"port", cfg.Server.Port,
				"log_level", cfg.Logger.Level,
			)

			orderRepo := postgres.NewOrderRepository(a.db)
			customerRepo := postgres.NewCustomerRepository(a.db)
			currencyRepo := postgres.NewCurrencyRepository(a.db)

			orderService := application.NewOrderService(orderRepo, logger)
			currencyService := application.NewCurrencyService(currencyRepo)
			gatewayClient := worldpay.NewClient(cfg.Gateway.ConnTimeout, logger)

			selector := processor.NewSelector(processor.Deps{
				Settings:  a.settings,
				Customers: customerRepo,
				Currency:  currencyService,
				Gateway:   gatewayClient,
				Store: worldpay.StoreContext{
					Name:        cfg.Store.Name,
					Locale:      cfg.Store.Locale,
					CallbackURL: cfg.Store.CallbackURL(),
				},
				Logger: logger,
			})

			callbackService := application.NewCallbackService(a.settings, orderRepo, orderService, logger)

			templates, err := rest.LoadTemplates()
			if err != nil {
				logger.Error("failed to load templates", "error", err)
				return err
			}

			h := handlers.NewHandlers(
				a.settings,
				orderRepo,
				callbackService,
				selector,
				templates,
				cfg.Store,
				logger,
			)

			server := &http.Server{
				Addr:         "0.0.0.0:" + cfg.Server.Port,
				Handler:      rest.NewRouter(h, logger, cfg.Server.ReadTimeout),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				logger.Error("server error", "error", err)
				return err
			case sig := <-quit:
				logger.Info("shutting down", "signal", sig.String())
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", "error", err)
				return err
			}

			logger.Info("server stopped")
			return nil
		},
	}
}

func installCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Write default settings and locale resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				slog.Error("failed to start", "error", err)
				return err
			}
			defer a.close()

			return application.NewPlugin(a.settings, a.locales, a.logger).Install(cmd.Context())
		},
	}
}

func uninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the plugin's locale resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				slog.Error("failed to start", "error", err)
				return err
			}
			defer a.close()

			return application.NewPlugin(a.settings, a.locales, a.logger).Uninstall(cmd.Context())
		},
	}
}
