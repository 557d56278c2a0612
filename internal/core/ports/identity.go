package ports

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// AuthStateListener receives the current principal, or nil when signed out.
type AuthStateListener func(principal *domain.Principal)

// IdentityProvider is the authentication service as seen by one client session.
// Failures are reported as *apperrors.AuthError.
type IdentityProvider interface {
	// SignIn authenticates with email and password and makes the principal current.
	SignIn(ctx context.Context, email, password string) (*domain.Principal, error)

	// SignUp creates an account and makes it current.
	SignUp(ctx context.Context, email, password, displayName string) (*domain.Principal, error)

	// ResetPassword starts a password reset. It succeeds for any well-formed email
	// so that callers cannot probe which accounts exist.
	ResetPassword(ctx context.Context, email string) error

	// SignOut clears the current principal.
	SignOut(ctx context.Context) error

	// CurrentPrincipal returns the signed-in principal or nil.
	CurrentPrincipal() *domain.Principal

	// OnAuthStateChanged calls listener once immediately with the current principal,
	// then on every sign-in and sign-out, until the returned function is called.
	OnAuthStateChanged(listener AuthStateListener) (unsubscribe func())
}
