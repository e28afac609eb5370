package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// localeResource is one admin-facing resource string the plugin owns.
type localeResource struct {
	Name  string
	Value string
}

var localeResources = []localeResource{
	{"Plugins.Payments.WorldPay.RedirectionTip", "You will be redirected to the WorldPay site to complete the order."},
	{"Plugins.Payments.WorldPay.IntegrationMode", "Integration mode"},
	{"Plugins.Payments.WorldPay.IntegrationMode.Hint", "Choose hosted redirect or direct API integration."},
	{"Plugins.Payments.WorldPay.UseSandbox", "Use sandbox"},
	{"Plugins.Payments.WorldPay.UseSandbox.Hint", "Use the sandbox environment?"},
	{"Plugins.Payments.WorldPay.TransactMode", "Transaction mode"},
	{"Plugins.Payments.WorldPay.TransactMode.Hint", "Authorize only, or authorize and capture."},
	{"Plugins.Payments.WorldPay.SecureNetID", "SecureNet ID"},
	{"Plugins.Payments.WorldPay.SecureNetID.Hint", "Enter the SecureNet account ID."},
	{"Plugins.Payments.WorldPay.SecureKey", "Secure key"},
	{"Plugins.Payments.WorldPay.SecureKey.Hint", "Enter the SecureNet secure key."},
	{"Plugins.Payments.WorldPay.EndPoint", "Endpoint"},
	{"Plugins.Payments.WorldPay.EndPoint.Hint", "Enter the live API endpoint URL."},
	{"Plugins.Payments.WorldPay.DeveloperId", "Developer ID"},
	{"Plugins.Payments.WorldPay.DeveloperId.Hint", "Enter the developer application ID."},
	{"Plugins.Payments.WorldPay.DeveloperVersion", "Developer version"},
	{"Plugins.Payments.WorldPay.DeveloperVersion.Hint", "Enter the developer application version."},
	{"Plugins.Payments.WorldPay.InstanceId", "Instance ID"},
	{"Plugins.Payments.WorldPay.InstanceId.Hint", "Enter the WorldPay instance ID."},
	{"Plugins.Payments.WorldPay.CreditCard", "Payment method"},
	{"Plugins.Payments.WorldPay.CreditCard.Hint", "Restrict the hosted page to one payment method."},
	{"Plugins.Payments.WorldPay.CallbackPassword", "Callback password"},
	{"Plugins.Payments.WorldPay.CallbackPassword.Hint", "Enter the callback password."},
	{"Plugins.Payments.WorldPay.CssName", "CSS"},
	{"Plugins.Payments.WorldPay.CssName.Hint", "Enter the hosted page CSS theme name."},
	{"Plugins.Payments.WorldPay.AdditionalFee", "Additional fee"},
	{"Plugins.Payments.WorldPay.AdditionalFee.Hint", "Enter an additional fee to charge your customers."},
	{"Plugins.Payments.WorldPay.AdditionalFeePercentage", "Additional fee as percentage"},
	{"Plugins.Payments.WorldPay.AdditionalFeePercentage.Hint", "Charge the additional fee as a percentage of the order total."},
}

// Plugin performs the install/uninstall bookkeeping: default settings and
// locale resource registration.
type Plugin struct {
	settings SettingsStore
	locales  LocaleStore
	logger   *slog.Logger
}

func NewPlugin(settings SettingsStore, locales LocaleStore, logger *slog.Logger) *Plugin {
	return &Plugin{settings: settings, locales: locales, logger: logger}
}

func (p *Plugin) Install(ctx context.Context) error {
	if err := p.settings.Save(ctx, domain.DefaultSettings()); err != nil {
		return fmt.Errorf("save default settings: %w", err)
	}

	for _, res := range localeResources {
		if err := p.locales.AddOrUpdate(ctx, res.Name, res.Value); err != nil {
			return fmt.Errorf("register locale resource %s: %w", res.Name, err)
		}
	}

	p.logger.Info("worldpay plugin installed", "locale_resources", len(localeResources))
	return nil
}

func (p *Plugin) Uninstall(ctx context.Context) error {
	if err := p.settings.Delete(ctx); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}

	for _, res := range localeResources {
		if err := p.locales.Delete(ctx, res.Name); err != nil {
			return fmt.Errorf("delete locale resource %s: %w", res.Name, err)
		}
	}

	p.logger.Info("worldpay plugin uninstalled")
	return nil
}
