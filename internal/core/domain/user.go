package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// UserAccount is the credential record kept by the identity directory.
// It never leaves the identity adapter; callers only see the derived Principal.
type UserAccount struct {
	UID            string       `json:"uid"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	DisplayName    string       `json:"displayName"`
	PhotoURL       string       `json:"photoURL"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`

	ResetTokenHash   string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt    time.Time  `json:"createdAt"`
	LastSignInAt *time.Time `json:"lastSignInAt,omitempty"`
}

// Principal projects the account onto the identity handle shared with the rest of the app.
func (u *UserAccount) Principal() *Principal {
	return &Principal{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// UserProfile is the per-user document kept in the users collection. Sync pushes
// merge into the same document, so the profile sits alongside the financial records.
type UserProfile struct {
	UID          string     `json:"uid"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	PhotoURL     string     `json:"photoURL"`
	Role         Role       `json:"role"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	AuditFields
}
