// Package identity implements the identity provider on top of the account directory.
// A Session is the provider as seen by one client: it holds at most one current principal
// and notifies listeners on every sign-in and sign-out.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest password the provider accepts.
const MinPasswordLen = 6

// DefaultResetTokenTTL bounds how long a reset link stays usable.
const DefaultResetTokenTTL = time.Hour

// ResetNotifier delivers a raw reset token to the account owner.
type ResetNotifier func(ctx context.Context, account domain.UserAccount, rawToken string)

// Option configures a Session.
type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Session) {
		s.bcryptCost = cost
	}
}

func WithResetTokenTTL(ttl time.Duration) Option {
	return func(s *Session) {
		s.resetTTL = ttl
	}
}

func WithResetNotifier(notify ResetNotifier) Option {
	return func(s *Session) {
		s.notifyReset = notify
	}
}

// Session is safe for concurrent use. Auth state listeners must not call back into the
// session that is notifying them.
type Session struct {
	dir         portsrepo.UserDirectoryFacade
	logger      *slog.Logger
	now         func() time.Time
	bcryptCost  int
	resetTTL    time.Duration
	notifyReset ResetNotifier

	// notifyMu serializes transitions with their notifications so listeners observe
	// principals in order.
	notifyMu  sync.Mutex
	mu        sync.Mutex
	current   *domain.Principal
	listeners map[int]ports.AuthStateListener
	nextID    int
}

var _ ports.IdentityProvider = (*Session)(nil)

// NewSession creates a signed-out session.
func NewSession(dir portsrepo.UserDirectoryFacade, opts ...Option) *Session {
	s := &Session{
		dir:        dir,
		logger:     slog.Default(),
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
		resetTTL:   DefaultResetTokenTTL,
		listeners:  make(map[int]ports.AuthStateListener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail is the directory key form of an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Session) SignIn(ctx context.Context, email, password string) (*domain.Principal, error) {
	account, err := s.dir.FindAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthError(apperrors.AuthUserNotFound, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidCredential, nil)
	}
	return s.completeSignIn(ctx, account), nil
}

func (s *Session) SignUp(ctx context.Context, email, password, displayName string) (*domain.Principal, error) {
	if len([]rune(password)) < MinPasswordLen {
		return nil, apperrors.NewAuthError(apperrors.AuthWeakPassword, nil)
	}
	hash, err := utils.HashPasswordWithCost(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewAuthError(apperrors.AuthUnknown, fmt.Errorf("failed to hash password: %w", err))
	}

	now := s.now().UTC()
	account := domain.UserAccount{
		UID:          uuid.NewString(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		LastSignInAt: &now,
	}
	if err := s.dir.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	s.logger.Info("Account created", slog.String("uid", account.UID), slog.String("email", utils.RedactEmail(account.Email)))

	principal := account.Principal()
	s.setPrincipal(principal)
	return principal, nil
}

// ResetPassword issues a reset token when the account exists. The outcome is the same
// whether or not it does.
func (s *Session) ResetPassword(ctx context.Context, email string) error {
	if !validation.IsEmailShape(email) {
		return apperrors.NewAuthError(apperrors.AuthUnknown, errors.New("malformed email"))
	}
	account, err := s.dir.FindAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("Password reset for unknown email", slog.String("email", utils.RedactEmail(email)))
			return nil
		}
		return apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}

	raw, hash, err := utils.NewResetToken()
	if err != nil {
		return apperrors.NewAuthError(apperrors.AuthUnknown, err)
	}
	if err := s.dir.SaveResetToken(ctx, account.UID, hash, s.now().UTC().Add(s.resetTTL)); err != nil {
		return apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	if s.notifyReset != nil {
		s.notifyReset(ctx, *account, raw)
	}
	return nil
}

// ConfirmPasswordReset sets a new password using a token issued by ResetPassword.
// It does not sign anybody in.
func (s *Session) ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error {
	if len([]rune(newPassword)) < MinPasswordLen {
		return apperrors.NewAuthError(apperrors.AuthWeakPassword, nil)
	}
	hash, err := utils.HashPasswordWithCost(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewAuthError(apperrors.AuthUnknown, err)
	}
	account, err := s.dir.ConsumeResetToken(ctx, utils.HashResetToken(rawToken), hash, s.now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAuthError(apperrors.AuthExpiredActionCode, nil)
		}
		return apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	s.logger.Info("Password reset completed", slog.String("uid", account.UID))
	return nil
}

// SignInWithExternal signs in with a federated identity. An account is matched by provider
// id, then by verified email (linking the provider), and created otherwise.
func (s *Session) SignInWithExternal(ctx context.Context, ext domain.ExternalIdentity) (*domain.Principal, error) {
	account, err := s.dir.FindAccountByProvider(ctx, ext.Provider, ext.ProviderUserID)
	switch {
	case err == nil:
		return s.completeSignIn(ctx, account), nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}

	email := NormalizeEmail(ext.Email)
	account, err = s.dir.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		if !ext.EmailVerified {
			return nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse, nil)
		}
		if err := s.dir.LinkProvider(ctx, account.UID, ext.Provider, ext.ProviderUserID); err != nil {
			return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
		}
		return s.completeSignIn(ctx, account), nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}

	now := s.now().UTC()
	created := domain.UserAccount{
		UID:            uuid.NewString(),
		Email:          email,
		DisplayName:    ext.DisplayName,
		PhotoURL:       ext.PhotoURL,
		AuthProvider:   ext.Provider,
		ProviderUserID: ext.ProviderUserID,
		CreatedAt:      now,
		LastSignInAt:   &now,
	}
	if err := s.dir.CreateAccount(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	principal := created.Principal()
	s.setPrincipal(principal)
	return principal, nil
}

// Restore makes the account with uid current without a password, for callers that have
// already authenticated the principal by other means (a signed access token).
func (s *Session) Restore(ctx context.Context, uid string) (*domain.Principal, error) {
	account, err := s.dir.FindAccountByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthError(apperrors.AuthUserNotFound, nil)
		}
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}
	principal := account.Principal()
	s.setPrincipal(principal)
	return principal, nil
}

func (s *Session) SignOut(_ context.Context) error {
	s.setPrincipal(nil)
	return nil
}

func (s *Session) CurrentPrincipal() *domain.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

func (s *Session) OnAuthStateChanged(listener ports.AuthStateListener) func() {
	s.notifyMu.Lock()
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()
	listener(s.CurrentPrincipal())
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) completeSignIn(ctx context.Context, account *domain.UserAccount) *domain.Principal {
	if err := s.dir.RecordSignIn(ctx, account.UID, s.now().UTC()); err != nil {
		s.logger.Warn("Failed to record sign-in", slog.String("uid", account.UID), slog.String("error", err.Error()))
	}
	principal := account.Principal()
	s.setPrincipal(principal)
	return principal
}

func (s *Session) setPrincipal(principal *domain.Principal) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.current = principal
	listeners := make([]ports.AuthStateListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		var p *domain.Principal
		if principal != nil {
			cp := *principal
			p = &cp
		}
		l(p)
	}
}
