package repositories

import "github.com/SscSPs/finsync/internal/core/ports"

// RepositoryProvider holds the persistence adapters needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserDirectory UserDirectoryFacade
	Documents     ports.DocumentStore
}
