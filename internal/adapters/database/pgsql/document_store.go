package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
	"github.com/SscSPs/finsync/internal/models"
	"github.com/SscSPs/finsync/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDocumentStore keeps documents as JSONB rows keyed by (collection, doc_id).
// Subscriptions are served by a ChangeFeed.
type PgxDocumentStore struct {
	db   *pgxpool.Pool
	feed *ChangeFeed
}

var _ ports.DocumentStore = (*PgxDocumentStore)(nil)

// NewDocumentStore creates a store. feed may be nil, in which case Subscribe fails.
func NewDocumentStore(db *pgxpool.Pool, feed *ChangeFeed) *PgxDocumentStore {
	return &PgxDocumentStore{db: db, feed: feed}
}

const documentColumns = `collection, doc_id, data, created_at, updated_at`

func scanDocument(row pgx.Row) (domain.DocumentSnapshot, error) {
	var m models.Document
	if err := row.Scan(&m.Collection, &m.DocID, &m.Data, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.DocumentSnapshot{}, err
	}
	return mapping.ToDomainDocumentSnapshot(m)
}

func (s *PgxDocumentStore) GetDocument(ctx context.Context, collection, id string) (*domain.DocumentSnapshot, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE collection = $1 AND doc_id = $2;`
	snap, err := scanDocument(s.db.QueryRow(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return &snap, nil
}

// SetDocument upserts the row. A merge concatenates the stored and new objects, so new
// top-level keys win and absent keys survive.
func (s *PgxDocumentStore) SetDocument(ctx context.Context, collection, id string, data domain.Document, merge bool) error {
	raw, err := mapping.EncodeDocumentData(data)
	if err != nil {
		return err
	}
	onConflict := `data = EXCLUDED.data`
	if merge {
		onConflict = `data = documents.data || EXCLUDED.data`
	}
	query := `
        INSERT INTO documents (collection, doc_id, data, created_at, updated_at)
        VALUES ($1, $2, $3::jsonb, now(), now())
        ON CONFLICT (collection, doc_id) DO UPDATE SET
            ` + onConflict + `,
            updated_at = now();
    `
	if _, err := s.db.Exec(ctx, query, collection, id, string(raw)); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PgxDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND doc_id = $2;`, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

// QueryByField uses JSONB containment so the GIN index on data applies.
func (s *PgxDocumentStore) QueryByField(ctx context.Context, collection, field string, value any) ([]domain.DocumentSnapshot, error) {
	probe, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query value: %w", err)
	}
	query := `
        SELECT ` + documentColumns + `
        FROM documents
        WHERE collection = $1 AND data @> $2::jsonb
        ORDER BY doc_id;
    `
	return s.queryDocuments(ctx, query, collection, string(probe))
}

func (s *PgxDocumentStore) ListDocuments(ctx context.Context, collection, after string, limit int) ([]domain.DocumentSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT ` + documentColumns + `
        FROM documents
        WHERE collection = $1 AND doc_id > $2
        ORDER BY doc_id
        LIMIT $3;
    `
	return s.queryDocuments(ctx, query, collection, after, limit)
}

func (s *PgxDocumentStore) Subscribe(_ context.Context, collection, id string, listener ports.DocumentListener) (func(), error) {
	if s.feed == nil {
		return nil, errors.New("document change feed is not running")
	}
	return s.feed.Subscribe(collection, id, listener), nil
}

func (s *PgxDocumentStore) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.DocumentSnapshot, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	out := []domain.DocumentSnapshot{}
	for rows.Next() {
		snap, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		out = append(out, snap)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return out, nil
}
