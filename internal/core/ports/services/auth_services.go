package services

import (
	"context"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, principal *domain.Principal) (string, time.Time, error)
}

// GoogleOAuthSvcFacade verifies Google identities.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the consent page URL for state.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCode redeems an authorization code and returns the verified identity.
	ExchangeCode(ctx context.Context, code string) (*domain.ExternalIdentity, error)
	// VerifyIDToken validates an ID token issued to this client and returns its identity.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error)
}

// AuthSvcFacade runs the identity flows for HTTP clients. Provider failures are returned as
// *apperrors.AuthError; forms are expected to be validated by the caller.
type AuthSvcFacade interface {
	SignUp(ctx context.Context, form domain.SignupForm) (*domain.AuthSession, error)
	Login(ctx context.Context, form domain.LoginForm) (*domain.AuthSession, error)
	ResetPassword(ctx context.Context, form domain.ResetPasswordForm) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	SignInWithGoogleIDToken(ctx context.Context, idToken string) (*domain.AuthSession, error)
	SignInWithGoogleCode(ctx context.Context, code string) (*domain.AuthSession, error)
	Logout(ctx context.Context, uid string) error
}
