package models

import (
	"database/sql"
	"time"
)

// AuthAccount is a row of auth_accounts.
type AuthAccount struct {
	UID              string         `db:"uid"`
	Email            string         `db:"email"`
	PasswordHash     sql.NullString `db:"password_hash"` // NULL for federated-only accounts
	DisplayName      string         `db:"display_name"`
	PhotoURL         string         `db:"photo_url"`
	AuthProvider     string         `db:"auth_provider"`
	ProviderUserID   sql.NullString `db:"provider_user_id"`
	ResetTokenHash   sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiry sql.NullTime   `db:"reset_token_expiry"`
	CreatedAt        time.Time      `db:"created_at"`
	LastSignInAt     sql.NullTime   `db:"last_sign_in_at"`
}
