package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

// SettingsStore persists the gateway settings as name/value rows, the way
// the host platform's setting service stores plugin configuration.
type SettingsStore struct {
	db *DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingPrefix = "worldpay."

func (s *SettingsStore) Load(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT name, value FROM plugin_settings WHERE name LIKE $1`

	rows, err := s.db.Pool.Query(ctx, query, settingPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	// No rows means the plugin was never configured; fall back to the
	// install defaults.
	if len(values) == 0 {
		return domain.DefaultSettings(), nil
	}

	return settingsFromMap(values), nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO plugin_settings (name, value) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
		`
		for name, value := range settingsToMap(settings) {
			if _, err := tx.Exec(ctx, query, name, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", name, err)
			}
		}
		return nil
	})
}

// Delete removes every persisted setting row. Run at plugin uninstall.
func (s *SettingsStore) Delete(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM plugin_settings WHERE name LIKE $1`, settingPrefix+"%")
	if err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}

// ClearCache is a no-op on the database store; the caching decorator owns
// invalidation.
func (s *SettingsStore) ClearCache(ctx context.Context) error {
	return nil
}

func settingsToMap(settings *domain.Settings) map[string]string {
	return map[string]string{
		settingPrefix + "integration_mode":          string(settings.IntegrationMode),
		settingPrefix + "use_sandbox":               strconv.FormatBool(settings.UseSandbox),
		settingPrefix + "transact_mode":             string(settings.TransactMode),
		settingPrefix + "additional_fee_cents":      strconv.FormatInt(settings.AdditionalFeeCents, 10),
		settingPrefix + "additional_fee_percentage": strconv.FormatBool(settings.AdditionalFeePercentage),
		settingPrefix + "securenet_id":              settings.SecureNetID,
		settingPrefix + "secure_key":                settings.SecureKey,
		settingPrefix + "endpoint":                  settings.EndPoint,
		settingPrefix + "developer_id":              strconv.Itoa(settings.DeveloperID),
		settingPrefix + "developer_version":         settings.DeveloperVersion,
		settingPrefix + "instance_id":               settings.InstanceID,
		settingPrefix + "callback_password":         settings.CallbackPassword,
		settingPrefix + "payment_method":            settings.PaymentMethodFilter,
		settingPrefix + "css_name":                  settings.CSSName,
	}
}

func settingsFromMap(values map[string]string) *domain.Settings {
	get := func(key string) string { return values[settingPrefix+key] }

	useSandbox, _ := strconv.ParseBool(get("use_sandbox"))
	feePercentage, _ := strconv.ParseBool(get("additional_fee_percentage"))
	feeCents, _ := strconv.ParseInt(get("additional_fee_cents"), 10, 64)
	developerID, _ := strconv.Atoi(get("developer_id"))

	return &domain.Settings{
		IntegrationMode:         domain.IntegrationMode(get("integration_mode")),
		UseSandbox:              useSandbox,
		TransactMode:            domain.TransactMode(get("transact_mode")),
		AdditionalFeeCents:      feeCents,
		AdditionalFeePercentage: feePercentage,
		SecureNetID:             get("securenet_id"),
		SecureKey:               get("secure_key"),
		EndPoint:                get("endpoint"),
		DeveloperID:             developerID,
		DeveloperVersion:        get("developer_version"),
		InstanceID:              get("instance_id"),
		CallbackPassword:        get("callback_password"),
		PaymentMethodFilter:     get("payment_method"),
		CSSName:                 get("css_name"),
	}
}
