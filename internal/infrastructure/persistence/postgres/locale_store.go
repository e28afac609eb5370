package postgres

import (
	"context"
	"fmt"
)

// LocaleStore persists the plugin's locale resources into the storefront's
// locale_resources table.
type LocaleStore struct {
	db *DB
}

func NewLocaleStore(db *DB) *LocaleStore {
	return &LocaleStore{db: db}
}

func (s *LocaleStore) AddOrUpdate(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO locale_resources (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
	`

	_, err := s.db.Pool.Exec(ctx, query, name, value)
	if err != nil {
		return fmt.Errorf("failed to upsert locale resource %q: %w", name, err)
	}
	return nil
}

func (s *LocaleStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM locale_resources WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete locale resource %q: %w", name, err)
	}
	return nil
}

// Get reads one locale resource. Used by tests.
func (s *LocaleStore) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.Pool.QueryRow(ctx, `SELECT value FROM locale_resources WHERE name = $1`, name).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("failed to load locale resource %q: %w", name, err)
	}
	return value, nil
}
