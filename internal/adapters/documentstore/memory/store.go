// Package memory is an in-process DocumentStore for tests and single-node development.
// Documents are normalized through JSON on write, so values read back have the same
// shapes the Postgres store returns (numbers as float64, timestamps as strings).
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
)

type docKey struct {
	collection string
	id         string
}

type entry struct {
	data      domain.Document
	updatedAt time.Time
}

// Store keeps documents in memory. Listeners are called synchronously on the writing
// goroutine, after the write is visible to readers.
type Store struct {
	mu        sync.RWMutex
	docs      map[docKey]entry
	listeners map[docKey]map[int]ports.DocumentListener
	nextID    int
	now       func() time.Time
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		docs:      make(map[docKey]entry),
		listeners: make(map[docKey]map[int]ports.DocumentListener),
		now:       time.Now,
	}
}

// WithClock replaces the clock used for UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (*domain.DocumentSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[docKey{collection, id}]
	if !ok {
		return nil, nil
	}
	snap := snapshotOf(collection, id, e)
	return &snap, nil
}

func (s *Store) SetDocument(ctx context.Context, collection, id string, data domain.Document, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := normalize(data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	key := docKey{collection, id}
	s.mu.Lock()
	if existing, ok := s.docs[key]; ok && merge {
		merged := existing.data.Clone()
		for k, v := range normalized {
			merged[k] = v
		}
		normalized = merged
	}
	e := entry{data: normalized, updatedAt: s.now().UTC()}
	s.docs[key] = e
	listeners := make([]ports.DocumentListener, 0, len(s.listeners[key]))
	for _, l := range s.listeners[key] {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshotOf(collection, id, e))
	}
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.docs, docKey{collection, id})
	s.mu.Unlock()
	return nil
}

func (s *Store) QueryByField(ctx context.Context, collection, field string, value any) ([]domain.DocumentSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := normalizeValue(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query value: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.DocumentSnapshot{}
	for key, e := range s.docs {
		if key.collection != collection {
			continue
		}
		if got, ok := e.data[field]; ok && reflect.DeepEqual(got, want) {
			out = append(out, snapshotOf(key.collection, key.id, e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListDocuments(ctx context.Context, collection, after string, limit int) ([]domain.DocumentSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0)
	for key := range s.docs {
		if key.collection == collection && key.id > after {
			ids = append(ids, key.id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]domain.DocumentSnapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, snapshotOf(collection, id, s.docs[docKey{collection, id}]))
	}
	return out, nil
}

func (s *Store) Subscribe(_ context.Context, collection, id string, listener ports.DocumentListener) (func(), error) {
	key := docKey{collection, id}
	s.mu.Lock()
	subID := s.nextID
	s.nextID++
	if s.listeners[key] == nil {
		s.listeners[key] = make(map[int]ports.DocumentListener)
	}
	s.listeners[key][subID] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners[key], subID)
			if len(s.listeners[key]) == 0 {
				delete(s.listeners, key)
			}
			s.mu.Unlock()
		})
	}, nil
}

// ListenerCount reports the live subscriptions on one document.
func (s *Store) ListenerCount(collection, id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[docKey{collection, id}])
}

func snapshotOf(collection, id string, e entry) domain.DocumentSnapshot {
	return domain.DocumentSnapshot{
		Collection: collection,
		ID:         id,
		Data:       e.data.Clone(),
		UpdatedAt:  e.updatedAt,
	}
}

func normalize(data domain.Document) (domain.Document, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := domain.Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
