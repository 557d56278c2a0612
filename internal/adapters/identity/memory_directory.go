package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
)

// MemoryDirectory is an in-process account directory used with DOCUMENT_STORE=memory
// and in tests.
type MemoryDirectory struct {
	mu       sync.RWMutex
	accounts map[string]domain.UserAccount
}

var _ portsrepo.UserDirectoryFacade = (*MemoryDirectory)(nil)

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{accounts: make(map[string]domain.UserAccount)}
}

func (d *MemoryDirectory) FindAccountByID(_ context.Context, uid string) (*domain.UserAccount, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	account, ok := d.accounts[uid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (d *MemoryDirectory) FindAccountByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findLocked(func(a domain.UserAccount) bool { return a.Email == email })
}

func (d *MemoryDirectory) FindAccountByProvider(_ context.Context, provider domain.AuthProvider, providerUserID string) (*domain.UserAccount, error) {
	if providerUserID == "" {
		return nil, apperrors.ErrNotFound
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.findLocked(func(a domain.UserAccount) bool {
		return a.AuthProvider == provider && a.ProviderUserID == providerUserID
	})
}

func (d *MemoryDirectory) CreateAccount(_ context.Context, account domain.UserAccount) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[account.UID]; ok {
		return fmt.Errorf("account %s: %w", account.UID, apperrors.ErrDuplicate)
	}
	if _, err := d.findLocked(func(a domain.UserAccount) bool { return a.Email == account.Email }); err == nil {
		return fmt.Errorf("email in use: %w", apperrors.ErrDuplicate)
	}
	d.accounts[account.UID] = account
	return nil
}

func (d *MemoryDirectory) RecordSignIn(_ context.Context, uid string, at time.Time) error {
	return d.update(uid, func(a *domain.UserAccount) { a.LastSignInAt = &at })
}

func (d *MemoryDirectory) LinkProvider(_ context.Context, uid string, provider domain.AuthProvider, providerUserID string) error {
	return d.update(uid, func(a *domain.UserAccount) {
		a.AuthProvider = provider
		a.ProviderUserID = providerUserID
	})
}

func (d *MemoryDirectory) SaveResetToken(_ context.Context, uid string, tokenHash string, expiresAt time.Time) error {
	return d.update(uid, func(a *domain.UserAccount) {
		a.ResetTokenHash = tokenHash
		a.ResetTokenExpiry = &expiresAt
	})
}

func (d *MemoryDirectory) ConsumeResetToken(_ context.Context, tokenHash string, newPasswordHash string, now time.Time) (*domain.UserAccount, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	account, err := d.findLocked(func(a domain.UserAccount) bool {
		return tokenHash != "" && a.ResetTokenHash == tokenHash && a.ResetTokenExpiry != nil && now.Before(*a.ResetTokenExpiry)
	})
	if err != nil {
		return nil, err
	}
	account.PasswordHash = newPasswordHash
	account.ResetTokenHash = ""
	account.ResetTokenExpiry = nil
	d.accounts[account.UID] = *account
	return account, nil
}

func (d *MemoryDirectory) DeleteAccount(_ context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.accounts, uid)
	return nil
}

func (d *MemoryDirectory) findLocked(match func(domain.UserAccount) bool) (*domain.UserAccount, error) {
	for _, a := range d.accounts {
		if match(a) {
			found := a
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (d *MemoryDirectory) update(uid string, mutate func(*domain.UserAccount)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	account, ok := d.accounts[uid]
	if !ok {
		return apperrors.ErrNotFound
	}
	mutate(&account)
	d.accounts[uid] = account
	return nil
}
