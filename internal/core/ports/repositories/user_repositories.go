package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// UserDirectoryReader defines read operations over identity accounts.
type UserDirectoryReader interface {
	// FindAccountByID retrieves an account by uid.
	FindAccountByID(ctx context.Context, uid string) (*domain.UserAccount, error)

	// FindAccountByEmail retrieves an account by its normalized email.
	FindAccountByEmail(ctx context.Context, email string) (*domain.UserAccount, error)

	// FindAccountByProvider retrieves an account linked to an external identity.
	FindAccountByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.UserAccount, error)
}

// UserDirectoryWriter defines write operations over identity accounts.
type UserDirectoryWriter interface {
	// CreateAccount persists a new account. Returns apperrors.ErrDuplicate if the email is taken.
	CreateAccount(ctx context.Context, account domain.UserAccount) error

	// RecordSignIn stamps the last sign-in time.
	RecordSignIn(ctx context.Context, uid string, at time.Time) error

	// LinkProvider attaches an external identity to an existing account.
	LinkProvider(ctx context.Context, uid string, provider domain.AuthProvider, providerUserID string) error
}

// PasswordResetManager defines the reset token lifecycle.
type PasswordResetManager interface {
	// SaveResetToken stores the hash of a reset token for the account.
	SaveResetToken(ctx context.Context, uid string, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically replaces the password of the account holding an unexpired
	// token with the given hash, and clears the token. Returns apperrors.ErrNotFound otherwise.
	ConsumeResetToken(ctx context.Context, tokenHash string, newPasswordHash string, now time.Time) (*domain.UserAccount, error)
}

// UserDirectoryFacade combines all identity directory interfaces.
type UserDirectoryFacade interface {
	UserDirectoryReader
	UserDirectoryWriter
	PasswordResetManager

	// DeleteAccount removes the account. Deleting a missing account is not an error.
	DeleteAccount(ctx context.Context, uid string) error
}
