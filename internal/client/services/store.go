package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/timeflow/internal/client/repositories/kv"
	"github.com/dmitrijs2005/timeflow/internal/dbx"
)

// loadJSON decodes the value under key into v. found is false when the key
// is absent, leaving v untouched.
func loadJSON(ctx context.Context, repo kv.Repository, key string, v any) (found bool, err error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, repo kv.Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, raw)
}

// inTx runs fn with a key/value repository bound to one transaction.
func inTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, repo kv.Repository) error) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, kv.NewSQLiteRepository(tx))
	})
}

func indentJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
