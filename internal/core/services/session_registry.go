package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/finsync/internal/adapters/identity"
	"github.com/SscSPs/finsync/internal/core/ports"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	"github.com/SscSPs/finsync/internal/core/syncing"
)

// UserSession pairs a signed-in identity session with the sync controller that follows it.
type UserSession struct {
	Identity *identity.Session
	Sync     *syncing.Controller
}

// SessionRegistry keeps one UserSession per signed-in uid so that every request and event
// stream of a user observes the same sync state.
type SessionRegistry struct {
	dir          portsrepo.UserDirectoryFacade
	store        ports.DocumentStore
	logger       *slog.Logger
	identityOpts []identity.Option

	mu       sync.Mutex
	sessions map[string]*UserSession
}

// NewSessionRegistry creates an empty registry. identityOpts apply to every session it creates.
func NewSessionRegistry(dir portsrepo.UserDirectoryFacade, store ports.DocumentStore, logger *slog.Logger, identityOpts ...identity.Option) *SessionRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		dir:          dir,
		store:        store,
		logger:       logger,
		identityOpts: append([]identity.Option{identity.WithLogger(logger)}, identityOpts...),
		sessions:     make(map[string]*UserSession),
	}
}

// Begin returns a fresh signed-out session for running one auth flow. It is not registered
// until Adopt is called with it.
func (r *SessionRegistry) Begin() *identity.Session {
	return identity.NewSession(r.dir, r.identityOpts...)
}

// Adopt registers a signed-in session. When uid already has one, the existing session is
// kept and returned so live event streams are not interrupted.
func (r *SessionRegistry) Adopt(session *identity.Session) *UserSession {
	principal := session.CurrentPrincipal()
	if principal == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[principal.UID]; ok {
		return existing
	}
	us := &UserSession{
		Identity: session,
		Sync:     syncing.NewController(session, r.store, syncing.WithLogger(r.logger.With(slog.String("user_id", principal.UID)))),
	}
	r.sessions[principal.UID] = us
	return us
}

// Get returns the session of uid, restoring it from the directory when the process has not
// seen uid since it started.
func (r *SessionRegistry) Get(ctx context.Context, uid string) (*UserSession, error) {
	r.mu.Lock()
	us, ok := r.sessions[uid]
	r.mu.Unlock()
	if ok {
		return us, nil
	}

	session := r.Begin()
	if _, err := session.Restore(ctx, uid); err != nil {
		return nil, err
	}
	return r.Adopt(session), nil
}

// End signs uid out and releases its controller. Unknown uids are ignored.
func (r *SessionRegistry) End(ctx context.Context, uid string) {
	r.mu.Lock()
	us, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()
	if !ok {
		return
	}
	teardown(ctx, us, r.logger)
}

// Len reports the number of registered sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close ends every session.
func (r *SessionRegistry) Close(ctx context.Context) {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*UserSession)
	r.mu.Unlock()

	for _, us := range sessions {
		teardown(ctx, us, r.logger)
	}
}

func teardown(ctx context.Context, us *UserSession, logger *slog.Logger) {
	if err := us.Identity.SignOut(ctx); err != nil {
		logger.Warn("Sign-out failed during teardown", slog.String("error", err.Error()))
	}
	us.Sync.Close()
}
