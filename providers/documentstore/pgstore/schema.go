package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    id         TEXT PRIMARY KEY,
    doc_type   TEXT NOT NULL,
    body       JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createTypeIndexSQL = `CREATE INDEX IF NOT EXISTS %s ON %s (doc_type)`

// EnsureSchema creates the table and its doc_type index if missing.
// Production deployments should manage the schema with migrations.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createTableSQL, s.tableName)); err != nil {
		return fmt.Errorf("pgstore: create table: %w", err)
	}

	indexName := pgx.Identifier{"idx_" + s.rawTableName + "_doc_type"}.Sanitize()
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createTypeIndexSQL, indexName, s.tableName)); err != nil {
		return fmt.Errorf("pgstore: create doc_type index: %w", err)
	}
	return nil
}
