package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	"github.com/SscSPs/finsync/internal/models"
	"github.com/SscSPs/finsync/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserDirectory stores identity accounts in auth_accounts.
type PgxUserDirectory struct {
	BaseRepository
}

func newPgxUserDirectory(db *pgxpool.Pool) *PgxUserDirectory {
	return &PgxUserDirectory{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UserDirectoryFacade = (*PgxUserDirectory)(nil)

const accountColumns = `uid, email, password_hash, display_name, photo_url, auth_provider, provider_user_id,
	reset_token_hash, reset_token_expiry, created_at, last_sign_in_at`

func scanAccount(row pgx.Row) (*domain.UserAccount, error) {
	var m models.AuthAccount
	err := row.Scan(
		&m.UID,
		&m.Email,
		&m.PasswordHash,
		&m.DisplayName,
		&m.PhotoURL,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.ResetTokenHash,
		&m.ResetTokenExpiry,
		&m.CreatedAt,
		&m.LastSignInAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	account := mapping.ToDomainUserAccount(m)
	return &account, nil
}

func (r *PgxUserDirectory) FindAccountByID(ctx context.Context, uid string) (*domain.UserAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_accounts WHERE uid = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, uid))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by ID %s: %w", uid, err)
	}
	return account, err
}

func (r *PgxUserDirectory) FindAccountByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_accounts WHERE email = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return account, err
}

func (r *PgxUserDirectory) FindAccountByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.UserAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM auth_accounts WHERE auth_provider = $1 AND provider_user_id = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, string(provider), providerUserID))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by provider %s: %w", provider, err)
	}
	return account, err
}

func (r *PgxUserDirectory) CreateAccount(ctx context.Context, account domain.UserAccount) error {
	m := mapping.ToModelAuthAccount(account)
	query := `
        INSERT INTO auth_accounts (` + accountColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UID,
		m.Email,
		m.PasswordHash,
		m.DisplayName,
		m.PhotoURL,
		m.AuthProvider,
		m.ProviderUserID,
		m.ResetTokenHash,
		m.ResetTokenExpiry,
		m.CreatedAt,
		m.LastSignInAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *PgxUserDirectory) RecordSignIn(ctx context.Context, uid string, at time.Time) error {
	return r.execOne(ctx, `UPDATE auth_accounts SET last_sign_in_at = $1 WHERE uid = $2;`, at, uid)
}

func (r *PgxUserDirectory) LinkProvider(ctx context.Context, uid string, provider domain.AuthProvider, providerUserID string) error {
	return r.execOne(ctx, `UPDATE auth_accounts SET auth_provider = $1, provider_user_id = $2 WHERE uid = $3;`,
		string(provider), providerUserID, uid)
}

func (r *PgxUserDirectory) SaveResetToken(ctx context.Context, uid string, tokenHash string, expiresAt time.Time) error {
	return r.execOne(ctx, `UPDATE auth_accounts SET reset_token_hash = $1, reset_token_expiry = $2 WHERE uid = $3;`,
		tokenHash, expiresAt, uid)
}

// ConsumeResetToken locks the token holder, checks expiry and swaps the password in one transaction.
func (r *PgxUserDirectory) ConsumeResetToken(ctx context.Context, tokenHash string, newPasswordHash string, now time.Time) (*domain.UserAccount, error) {
	var account *domain.UserAccount
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + accountColumns + ` FROM auth_accounts WHERE reset_token_hash = $1 FOR UPDATE;`
		found, err := scanAccount(tx.QueryRow(ctx, query, tokenHash))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to look up reset token: %w", err)
		}
		if found.ResetTokenExpiry == nil || !now.Before(*found.ResetTokenExpiry) {
			return apperrors.ErrNotFound
		}

		_, err = tx.Exec(ctx, `
            UPDATE auth_accounts
            SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL
            WHERE uid = $2;
        `, newPasswordHash, found.UID)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	account.PasswordHash = newPasswordHash
	account.ResetTokenHash = ""
	account.ResetTokenExpiry = nil
	return account, nil
}

// DeleteAccount removes the account together with its users document.
func (r *PgxUserDirectory) DeleteAccount(ctx context.Context, uid string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND doc_id = $2;`, domain.UsersCollection, uid); err != nil {
			return fmt.Errorf("failed to delete user document: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM auth_accounts WHERE uid = $1;`, uid); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
}

func (r *PgxUserDirectory) execOne(ctx context.Context, query string, args ...any) error {
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
