package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/utils"
)

// watchBuffer bounds the events queued for a slow stream consumer; the excess is dropped.
const watchBuffer = 32

type syncService struct {
	BaseService
	registry *SessionRegistry
	now      func() time.Time
}

// NewSyncService exposes the controllers held by registry.
func NewSyncService(registry *SessionRegistry, analytics *utils.PosthogClientWrapper) portssvc.SyncSvcFacade {
	return &syncService{
		BaseService: BaseService{Analytics: analytics},
		registry:    registry,
		now:         time.Now,
	}
}

func (s *syncService) State(ctx context.Context, uid string) (domain.SyncState, error) {
	us, err := s.registry.Get(ctx, uid)
	if err != nil {
		return domain.SyncDisconnected, err
	}
	return us.Sync.State(), nil
}

func (s *syncService) Push(ctx context.Context, uid string, record domain.Document) (bool, domain.SyncState, error) {
	us, err := s.registry.Get(ctx, uid)
	if err != nil {
		return false, domain.SyncDisconnected, err
	}
	ok := us.Sync.Push(ctx, record)
	state := us.Sync.State()
	if ok {
		s.LogDebug(ctx, "Record pushed", slog.Int("fields", len(record)))
		s.Track(uid, utils.EventSyncPushed, map[string]any{"fields": len(record)})
	} else {
		s.Track(uid, utils.EventSyncFailed, map[string]any{"op": "push", "state": string(state)})
	}
	return ok, state, nil
}

func (s *syncService) Pull(ctx context.Context, uid string) (domain.Document, domain.SyncState, error) {
	us, err := s.registry.Get(ctx, uid)
	if err != nil {
		return nil, domain.SyncDisconnected, err
	}
	record, ok := us.Sync.Pull(ctx)
	state := us.Sync.State()
	switch {
	case ok:
		s.Track(uid, utils.EventSyncPulled, nil)
	case state == domain.SyncError:
		s.Track(uid, utils.EventSyncFailed, map[string]any{"op": "pull"})
	}
	return record, state, nil
}

func (s *syncService) Watch(ctx context.Context, uid string) (<-chan domain.SyncEvent, error) {
	us, err := s.registry.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan domain.SyncEvent, watchBuffer)
	logger := s.GetLogger(ctx)

	var mu sync.Mutex
	closed := false
	emit := func(event domain.SyncEvent) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- event:
		default:
			logger.Warn("Dropping sync event for slow consumer", slog.String("type", string(event.Type)))
		}
	}

	emit(domain.SyncEvent{Type: domain.SyncEventState, State: us.Sync.State(), At: s.now().UTC()})
	stopState := us.Sync.OnStateChange(func(state domain.SyncState) {
		emit(domain.SyncEvent{Type: domain.SyncEventState, State: state, At: s.now().UTC()})
		if state == domain.SyncDisconnected {
			cancel()
		}
	})
	stopRecords := us.Sync.Subscribe(ctx, func(record domain.Document) {
		emit(domain.SyncEvent{Type: domain.SyncEventRecord, Record: record, At: s.now().UTC()})
	})

	go func() {
		<-ctx.Done()
		stopRecords()
		stopState()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out, nil
}
