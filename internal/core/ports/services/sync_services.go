package services

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// SyncSvcFacade exposes the per-user sync controller. Errors are only returned when the
// user's session cannot be established; sync failures are reported through the state.
type SyncSvcFacade interface {
	State(ctx context.Context, uid string) (domain.SyncState, error)
	Push(ctx context.Context, uid string, record domain.Document) (bool, domain.SyncState, error)
	Pull(ctx context.Context, uid string) (domain.Document, domain.SyncState, error)

	// Watch streams state transitions and remote record changes until ctx is done.
	// The channel is closed when the stream ends.
	Watch(ctx context.Context, uid string) (<-chan domain.SyncEvent, error)
}
