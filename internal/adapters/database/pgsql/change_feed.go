package pgsql

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
	"github.com/SscSPs/finsync/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the NOTIFY channel written by the documents trigger.
const ChangeChannel = "document_changes"

const (
	minReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay = 30 * time.Second
)

type docKey struct {
	collection string
	id         string
}

// documentFetcher reads the current state of a changed document.
type documentFetcher func(ctx context.Context, collection, id string) (*domain.DocumentSnapshot, error)

// ChangeFeed holds one dedicated LISTEN connection and fans notifications out to
// subscribers. Notifications only carry the key; the document is re-read once per
// change and shared by all of its subscribers.
type ChangeFeed struct {
	db     *pgxpool.Pool
	logger *slog.Logger
	fetch  documentFetcher

	mu          sync.RWMutex
	subscribers map[docKey]map[int]ports.DocumentListener
	nextID      int
}

// NewChangeFeed creates a feed on db. Call Run to start listening.
func NewChangeFeed(db *pgxpool.Pool, logger *slog.Logger) *ChangeFeed {
	f := &ChangeFeed{
		db:          db,
		logger:      logger,
		subscribers: make(map[docKey]map[int]ports.DocumentListener),
	}
	store := &PgxDocumentStore{db: db}
	f.fetch = store.GetDocument
	return f
}

// Subscribe registers listener for one document. The returned function is idempotent.
func (f *ChangeFeed) Subscribe(collection, id string, listener ports.DocumentListener) func() {
	key := docKey{collection, id}
	f.mu.Lock()
	subID := f.nextID
	f.nextID++
	if f.subscribers[key] == nil {
		f.subscribers[key] = make(map[int]ports.DocumentListener)
	}
	f.subscribers[key][subID] = listener
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subscribers[key], subID)
			if len(f.subscribers[key]) == 0 {
				delete(f.subscribers, key)
			}
			f.mu.Unlock()
		})
	}
}

// Run listens until ctx is cancelled, reconnecting with exponential backoff.
func (f *ChangeFeed) Run(ctx context.Context) {
	delay := minReconnectDelay
	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("Document change feed disconnected", slog.String("error", err.Error()), slog.Duration("retry_in", delay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
	}
}

func (f *ChangeFeed) listen(ctx context.Context) error {
	conn, err := f.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return err
	}
	f.logger.Info("Listening for document changes", slog.String("channel", ChangeChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var change models.DocumentChange
		if err := json.Unmarshal([]byte(notification.Payload), &change); err != nil {
			f.logger.Warn("Malformed document change payload", slog.String("payload", notification.Payload))
			continue
		}
		f.dispatch(ctx, change)
	}
}

// dispatch delivers a change to the document's subscribers. Deletions are not delivered.
func (f *ChangeFeed) dispatch(ctx context.Context, change models.DocumentChange) {
	if change.Op == "DELETE" {
		return
	}
	key := docKey{change.Collection, change.DocID}
	f.mu.RLock()
	listeners := make([]ports.DocumentListener, 0, len(f.subscribers[key]))
	for _, l := range f.subscribers[key] {
		listeners = append(listeners, l)
	}
	f.mu.RUnlock()
	if len(listeners) == 0 {
		return
	}

	snap, err := f.fetch(ctx, change.Collection, change.DocID)
	if err != nil {
		f.logger.Error("Failed to read changed document", slog.String("collection", change.Collection), slog.String("error", err.Error()))
		return
	}
	if snap == nil {
		return
	}
	for _, l := range listeners {
		delivered := *snap
		delivered.Data = snap.Data.Clone()
		l(delivered)
	}
}
