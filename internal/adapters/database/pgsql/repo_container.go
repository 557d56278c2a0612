package pgsql

import (
	"log/slog"

	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres adapters. The returned feed must be started
// with Run for document subscriptions to fire.
func NewRepositoryProvider(dbPool *pgxpool.Pool, logger *slog.Logger) (portsrepo.RepositoryProvider, *ChangeFeed) {
	feed := NewChangeFeed(dbPool, logger)
	return portsrepo.RepositoryProvider{
		UserDirectory: newPgxUserDirectory(dbPool),
		Documents:     NewDocumentStore(dbPool, feed),
	}, feed
}
