package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// configurePage is the data behind the admin settings template.
type configurePage struct {
	Action        string
	Settings      *domain.Settings
	AdditionalFee string
	DeveloperID   string
	Saved         bool
	Errors        []string
}

// GetConfigure renders the admin settings form.
func (h *Handlers) GetConfigure(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	h.templates.Render(w, h.logger, http.StatusOK, "configure", h.configurePage(settings, false, nil))
}

// PostConfigure saves the submitted settings and drops the cached copy so
// the next gateway call sees the new values.
func (h *Handlers) PostConfigure(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	settings, errs := settingsFromForm(r)
	if len(errs) > 0 {
		h.templates.Render(w, h.logger, http.StatusBadRequest, "configure", h.configurePage(settings, false, errs))
		return
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	if err := h.settings.ClearCache(r.Context()); err != nil {
		h.logger.Warn("failed to clear settings cache", "error", err)
	}

	h.logger.Info("worldpay settings saved", "integration_mode", settings.IntegrationMode)
	h.templates.Render(w, h.logger, http.StatusOK, "configure", h.configurePage(settings, true, nil))
}

func (h *Handlers) configurePage(settings *domain.Settings, saved bool, errs []string) configurePage {
	return configurePage{
		Action:        "/Plugins/PaymentWorldPay/Configure",
		Settings:      settings,
		AdditionalFee: domain.Money{Cents: settings.AdditionalFeeCents}.Format(),
		DeveloperID:   strconv.Itoa(settings.DeveloperID),
		Saved:         saved,
		Errors:        errs,
	}
}

func settingsFromForm(r *http.Request) (*domain.Settings, []string) {
	var errs []string
	settings := &domain.Settings{
		UseSandbox:              r.PostFormValue("use_sandbox") == "true",
		AdditionalFeePercentage: r.PostFormValue("additional_fee_percentage") == "true",
		SecureNetID:             strings.TrimSpace(r.PostFormValue("securenet_id")),
		SecureKey:               strings.TrimSpace(r.PostFormValue("secure_key")),
		EndPoint:                strings.TrimSpace(r.PostFormValue("endpoint")),
		DeveloperVersion:        strings.TrimSpace(r.PostFormValue("developer_version")),
		InstanceID:              strings.TrimSpace(r.PostFormValue("instance_id")),
		CallbackPassword:        r.PostFormValue("callback_password"),
		PaymentMethodFilter:     strings.TrimSpace(r.PostFormValue("payment_method_filter")),
		CSSName:                 strings.TrimSpace(r.PostFormValue("css_name")),
	}

	switch mode := r.PostFormValue("integration_mode"); mode {
	case string(domain.ModeDirect):
		settings.IntegrationMode = domain.ModeDirect
	case string(domain.ModeRedirect):
		settings.IntegrationMode = domain.ModeRedirect
	default:
		errs = append(errs, fmt.Sprintf("unknown integration mode %q", mode))
	}

	switch mode := r.PostFormValue("transact_mode"); mode {
	case string(domain.TransactAuthorize):
		settings.TransactMode = domain.TransactAuthorize
	case string(domain.TransactAuthorizeAndCapture):
		settings.TransactMode = domain.TransactAuthorizeAndCapture
	default:
		errs = append(errs, fmt.Sprintf("unknown transaction mode %q", mode))
	}

	if fee := strings.TrimSpace(r.PostFormValue("additional_fee")); fee != "" {
		cents, err := parseFeeCents(fee)
		if err != nil {
			errs = append(errs, fmt.Sprintf("additional fee %q is not a valid amount", fee))
		} else {
			settings.AdditionalFeeCents = cents
		}
	}

	if devID := strings.TrimSpace(r.PostFormValue("developer_id")); devID != "" {
		id, err := strconv.Atoi(devID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("developer ID %q is not a number", devID))
		} else {
			settings.DeveloperID = id
		}
	}

	return settings, errs
}

// parseFeeCents reads a decimal amount like "1.50" into minor units.
func parseFeeCents(s string) (int64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return int64(math.Round(amount * 100)), nil
}
