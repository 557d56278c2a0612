package ports

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// DocumentListener receives a document after each remote change.
type DocumentListener func(snapshot domain.DocumentSnapshot)

// DocumentStore is a schemaless collection/id keyed store.
type DocumentStore interface {
	// GetDocument returns the document or nil when it does not exist.
	GetDocument(ctx context.Context, collection, id string) (*domain.DocumentSnapshot, error)

	// SetDocument writes data. With merge, only the top-level fields present in data
	// are overwritten and the rest of the stored document is kept.
	SetDocument(ctx context.Context, collection, id string, data domain.Document, merge bool) error

	// DeleteDocument removes the document. Deleting a missing document is not an error.
	DeleteDocument(ctx context.Context, collection, id string) error

	// QueryByField returns every document whose top-level field equals value.
	QueryByField(ctx context.Context, collection, field string, value any) ([]domain.DocumentSnapshot, error)

	// ListDocuments pages through a collection ordered by id. after is the last id of the
	// previous page ("" for the first page).
	ListDocuments(ctx context.Context, collection, after string, limit int) ([]domain.DocumentSnapshot, error)

	// Subscribe calls listener after every write to the document until unsubscribe is called.
	// Deletions are not delivered. unsubscribe is idempotent.
	Subscribe(ctx context.Context, collection, id string, listener DocumentListener) (unsubscribe func(), err error)
}
