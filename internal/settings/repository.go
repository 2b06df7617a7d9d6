package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Document keys in the settings table.
const (
	keyQuoteSettings = "quote_settings"
	keyCompanyInfo   = "company_info"
)

// ErrNotFound indicates the document has never been saved.
var ErrNotFound = errors.New("settings document not found")

// Repository stores settings documents as JSON rows keyed by name.
type Repository interface {
	Load(ctx context.Context, key string, target any) error
	Save(ctx context.Context, key string, doc any) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Load(ctx context.Context, key string, target any) error {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM settings WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("settings: decode %s: %w", key, err)
	}
	return nil
}

func (r *repository) Save(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO settings (key, doc, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`, key, raw)
	return err
}
