package mapping

import (
	"database/sql"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/models"
)

// ToModelAuthAccount converts a domain UserAccount to its row form.
func ToModelAuthAccount(d domain.UserAccount) models.AuthAccount {
	return models.AuthAccount{
		UID:              d.UID,
		Email:            d.Email,
		PasswordHash:     nullString(d.PasswordHash),
		DisplayName:      d.DisplayName,
		PhotoURL:         d.PhotoURL,
		AuthProvider:     string(d.AuthProvider),
		ProviderUserID:   nullString(d.ProviderUserID),
		ResetTokenHash:   nullString(d.ResetTokenHash),
		ResetTokenExpiry: nullTime(d.ResetTokenExpiry),
		CreatedAt:        d.CreatedAt,
		LastSignInAt:     nullTime(d.LastSignInAt),
	}
}

// ToDomainUserAccount converts an auth_accounts row to a domain UserAccount.
func ToDomainUserAccount(m models.AuthAccount) domain.UserAccount {
	return domain.UserAccount{
		UID:              m.UID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash.String,
		DisplayName:      m.DisplayName,
		PhotoURL:         m.PhotoURL,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		ProviderUserID:   m.ProviderUserID.String,
		ResetTokenHash:   m.ResetTokenHash.String,
		ResetTokenExpiry: timePtr(m.ResetTokenExpiry),
		CreatedAt:        m.CreatedAt,
		LastSignInAt:     timePtr(m.LastSignInAt),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
