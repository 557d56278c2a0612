package services

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// UserReaderSvc defines read operations over user profiles.
type UserReaderSvc interface {
	GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error)
	GetRole(ctx context.Context, uid string) (domain.Role, error)

	// ListUsers returns one page of profiles and the token of the next page ("" at the end).
	ListUsers(ctx context.Context, limit int, pageToken string) ([]domain.UserProfile, string, error)
}

// UserWriterSvc defines write operations over user profiles.
type UserWriterSvc interface {
	// EnsureProfile creates the profile fields of users/{uid} on first sign-in.
	EnsureProfile(ctx context.Context, principal *domain.Principal) (*domain.UserProfile, error)
	UpdateRole(ctx context.Context, actorUID, uid string, role domain.Role) (*domain.UserProfile, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	DeleteUser(ctx context.Context, actorUID, uid string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
