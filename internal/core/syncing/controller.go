// Package syncing tracks one user's push and pull operations against the document store
// as a small state machine guarded by the presence of an authenticated principal.
package syncing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
)

// StateListener observes state transitions.
type StateListener func(state domain.SyncState)

// RecordListener receives the remote record after each change.
type RecordListener func(record domain.Document)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Provider failures are only reported here.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now for the lastSyncedAt stamp.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller is owned by a single session. Push and Pull may still overlap; the state
// then reflects whichever completes last.
type Controller struct {
	identity ports.IdentityProvider
	store    ports.DocumentStore
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	state     domain.SyncState
	listeners map[int]StateListener
	liveSubs  map[int]func()
	nextID    int
	detach    func()
	closed    bool
}

// NewController creates a controller in the disconnected state and starts following
// the identity provider. The provider reports the current principal immediately, so
// a controller built for a signed-in session is connected on return.
func NewController(identity ports.IdentityProvider, store ports.DocumentStore, opts ...Option) *Controller {
	c := &Controller{
		identity:  identity,
		store:     store,
		logger:    slog.Default(),
		now:       time.Now,
		state:     domain.SyncDisconnected,
		listeners: make(map[int]StateListener),
		liveSubs:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	detach := identity.OnAuthStateChanged(c.onAuthStateChanged)

	c.mu.Lock()
	c.detach = detach
	closed := c.closed
	c.mu.Unlock()
	if closed {
		detach()
	}
	return c
}

// State returns the current state.
func (c *Controller) State() domain.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange registers listener for every subsequent transition. Listeners run on the
// goroutine that caused the transition and must not block.
func (c *Controller) OnStateChange(listener StateListener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Push merge-writes record into users/{uid}, stamped with the sync time and the
// principal's identity fields. It returns false without touching the store or the
// state when nobody is signed in, and false with state error when the write fails.
func (c *Controller) Push(ctx context.Context, record domain.Document) bool {
	principal := c.identity.CurrentPrincipal()
	if principal == nil {
		c.logger.Debug("Push rejected, no principal")
		return false
	}

	c.setState(domain.SyncSyncing)

	data := record.Clone()
	data[domain.FieldLastSyncedAt] = c.now().UTC().Format(time.RFC3339Nano)
	data[domain.FieldUserID] = principal.UID
	data[domain.FieldEmail] = principal.Email
	data[domain.FieldDisplayName] = principal.DisplayName
	data[domain.FieldPhotoURL] = principal.PhotoURL

	if err := c.store.SetDocument(ctx, domain.UsersCollection, principal.UID, data, true); err != nil {
		c.logger.Error("Sync push failed", slog.String("uid", principal.UID), slog.String("error", err.Error()))
		c.setState(domain.SyncError)
		return false
	}
	c.setState(domain.SyncSynced)
	return true
}

// Pull reads users/{uid}. The boolean is false when nobody is signed in, when no record
// exists (state no_data), or when the read fails (state error).
func (c *Controller) Pull(ctx context.Context) (domain.Document, bool) {
	principal := c.identity.CurrentPrincipal()
	if principal == nil {
		c.logger.Debug("Pull rejected, no principal")
		return nil, false
	}

	c.setState(domain.SyncLoading)

	snapshot, err := c.store.GetDocument(ctx, domain.UsersCollection, principal.UID)
	if err != nil {
		c.logger.Error("Sync pull failed", slog.String("uid", principal.UID), slog.String("error", err.Error()))
		c.setState(domain.SyncError)
		return nil, false
	}
	if snapshot == nil {
		c.setState(domain.SyncNoData)
		return nil, false
	}
	c.setState(domain.SyncLoaded)
	return snapshot.Data, true
}

// Subscribe calls listener with the remote record after every change to users/{uid}.
// Without a principal it registers nothing. The returned function is always safe to call,
// any number of times. Live subscriptions end on sign-out and on Close.
func (c *Controller) Subscribe(ctx context.Context, listener RecordListener) (unsubscribe func()) {
	principal := c.identity.CurrentPrincipal()
	if principal == nil {
		return func() {}
	}

	cancel, err := c.store.Subscribe(ctx, domain.UsersCollection, principal.UID, func(snapshot domain.DocumentSnapshot) {
		listener(snapshot.Data)
	})
	if err != nil {
		c.logger.Error("Sync subscribe failed", slog.String("uid", principal.UID), slog.String("error", err.Error()))
		c.setState(domain.SyncError)
		return func() {}
	}

	var once sync.Once
	stop := func() { once.Do(cancel) }

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		stop()
		return stop
	}
	id := c.nextID
	c.nextID++
	c.liveSubs[id] = stop
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.liveSubs, id)
		c.mu.Unlock()
		stop()
	}
}

// Close stops following the identity provider and ends every live subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	detach := c.detach
	subs := c.takeLiveSubsLocked()
	c.mu.Unlock()

	if detach != nil {
		detach()
	}
	for _, stop := range subs {
		stop()
	}
}

func (c *Controller) onAuthStateChanged(principal *domain.Principal) {
	if principal != nil {
		c.setState(domain.SyncConnected)
		return
	}

	c.mu.Lock()
	subs := c.takeLiveSubsLocked()
	c.mu.Unlock()
	for _, stop := range subs {
		stop()
	}
	c.setState(domain.SyncDisconnected)
}

func (c *Controller) takeLiveSubsLocked() []func() {
	subs := make([]func(), 0, len(c.liveSubs))
	for id, stop := range c.liveSubs {
		subs = append(subs, stop)
		delete(c.liveSubs, id)
	}
	return subs
}

func (c *Controller) setState(state domain.SyncState) {
	c.mu.Lock()
	c.state = state
	listeners := make([]StateListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}
