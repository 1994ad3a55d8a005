package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leofalp/llmadapt/core/document"
	"github.com/leofalp/llmadapt/providers/documentstore"
	"github.com/leofalp/llmadapt/providers/observability"
)

const (
	defaultTableName = "llmadapt_documents"
	backendName      = "postgres"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements documentstore.Store. Concurrency is left to the pool.
type Store struct {
	db           Querier
	tableName    string
	rawTableName string
}

var _ documentstore.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTableName overrides "llmadapt_documents". The name is quoted with
// pgx.Identifier since it is interpolated into SQL.
func WithTableName(name string) Option {
	return func(s *Store) {
		s.rawTableName = name
		s.tableName = pgx.Identifier{name}.Sanitize()
	}
}

// New returns a Store over db, which may be a *pgxpool.Pool, a pgx.Tx or a mock.
func New(db Querier, opts ...Option) *Store {
	store := &Store{
		db:           db,
		tableName:    defaultTableName,
		rawTableName: defaultTableName,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Put upserts doc keyed by its id.
func (s *Store) Put(ctx context.Context, doc document.Serializable) error {
	if doc == nil {
		return errors.New("pgstore: nil document")
	}
	id := doc.DocumentID()
	if id == "" {
		return errors.New("pgstore: document has no id")
	}
	body, err := document.Marshal(doc)
	if err != nil {
		return fmt.Errorf("pgstore: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc_type, body) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET doc_type = EXCLUDED.doc_type, body = EXCLUDED.body, updated_at = NOW()`, s.tableName)
	if _, err := s.db.Exec(ctx, query, id, doc.TypeName(), body); err != nil {
		return fmt.Errorf("pgstore: put %q: %w", id, err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDocumentPut,
			observability.String(observability.AttrStoreBackend, backendName),
			observability.String(observability.AttrDocumentID, id),
			observability.String(observability.AttrDocumentType, doc.TypeName()),
		)
	}
	return nil
}

// Get loads the document stored under id, or returns documentstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (document.Serializable, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE id = $1`, s.tableName)

	var body []byte
	if err := s.db.QueryRow(ctx, query, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pgstore: %q: %w", id, documentstore.ErrNotFound)
		}
		return nil, fmt.Errorf("pgstore: get %q: %w", id, err)
	}

	doc, err := document.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("pgstore: %q: %w", id, err)
	}
	return doc, nil
}

// Delete removes id and reports whether a row existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("pgstore: delete %q: %w", id, err)
	}

	removed := tag.RowsAffected() > 0
	if removed {
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventDocumentDelete,
				observability.String(observability.AttrStoreBackend, backendName),
				observability.String(observability.AttrDocumentID, id),
			)
		}
	}
	return removed, nil
}

// List returns every document ordered by creation time.
func (s *Store) List(ctx context.Context) ([]document.Serializable, error) {
	query := fmt.Sprintf(`SELECT body FROM %s ORDER BY created_at ASC, id ASC`, s.tableName)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListByType returns the documents whose type discriminant is typeName.
func (s *Store) ListByType(ctx context.Context, typeName string) ([]document.Serializable, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE doc_type = $1 ORDER BY created_at ASC, id ASC`, s.tableName)
	rows, err := s.db.Query(ctx, query, typeName)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list %s: %w", typeName, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// scanDocuments returns a non-nil slice.
func scanDocuments(rows pgx.Rows) ([]document.Serializable, error) {
	docs := []document.Serializable{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("pgstore: scan row: %w", err)
		}
		doc, err := document.Unmarshal(body)
		if err != nil {
			return nil, fmt.Errorf("pgstore: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: iterate rows: %w", err)
	}
	return docs, nil
}
