package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/ports"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/utils"
	"github.com/SscSPs/finsync/internal/utils/mapping"
	"github.com/SscSPs/finsync/internal/utils/pagination"
)

const (
	defaultUsersPageSize = 20
	maxUsersPageSize     = 100
)

type userService struct {
	BaseService
	store       ports.DocumentStore
	dir         portsrepo.UserDirectoryFacade
	registry    *SessionRegistry
	adminEmails map[string]struct{}
	now         func() time.Time
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithAdminEmails grants the admin role to profiles created for these emails.
func WithAdminEmails(emails []string) UserServiceOption {
	return func(s *userService) {
		for _, e := range emails {
			if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
				s.adminEmails[e] = struct{}{}
			}
		}
	}
}

// WithSessionRegistry ends the live session of deleted users.
func WithSessionRegistry(registry *SessionRegistry) UserServiceOption {
	return func(s *userService) {
		s.registry = registry
	}
}

// WithUserAnalytics adds the product analytics client.
func WithUserAnalytics(analytics *utils.PosthogClientWrapper) UserServiceOption {
	return func(s *userService) {
		s.Analytics = analytics
	}
}

// WithUserClock replaces time.Now for the createdAt stamp.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

// NewUserService creates the user service over the users collection of store.
func NewUserService(store ports.DocumentStore, dir portsrepo.UserDirectoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		store:       store,
		dir:         dir,
		adminEmails: make(map[string]struct{}),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	snap, err := s.store.GetDocument(ctx, domain.UsersCollection, uid)
	if err != nil {
		s.LogError(ctx, err, "Failed to read user profile", slog.String("user_id", uid))
		return nil, fmt.Errorf("failed to get profile %s: %w", uid, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, uid)
	}
	profile := mapping.ToDomainUserProfile(*snap)
	return &profile, nil
}

func (s *userService) GetRole(ctx context.Context, uid string) (domain.Role, error) {
	profile, err := s.GetProfile(ctx, uid)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

func (s *userService) ListUsers(ctx context.Context, limit int, pageToken string) ([]domain.UserProfile, string, error) {
	if limit <= 0 {
		limit = defaultUsersPageSize
	}
	if limit > maxUsersPageSize {
		limit = maxUsersPageSize
	}

	after := ""
	if pageToken != "" {
		fields, err := pagination.DecodeCursor(pageToken, 1)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = fields[0]
	}

	// One extra row tells whether another page follows.
	snaps, err := s.store.ListDocuments(ctx, domain.UsersCollection, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, "", fmt.Errorf("failed to list users: %w", err)
	}

	nextToken := ""
	if len(snaps) > limit {
		snaps = snaps[:limit]
		nextToken = pagination.EncodeCursor(snaps[limit-1].ID)
	}
	profiles := make([]domain.UserProfile, 0, len(snaps))
	for _, snap := range snaps {
		profiles = append(profiles, mapping.ToDomainUserProfile(snap))
	}
	return profiles, nextToken, nil
}

func (s *userService) EnsureProfile(ctx context.Context, principal *domain.Principal) (*domain.UserProfile, error) {
	if principal == nil {
		return nil, apperrors.ErrNoPrincipal
	}
	snap, err := s.store.GetDocument(ctx, domain.UsersCollection, principal.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", principal.UID, err)
	}

	fields := domain.Document{
		domain.FieldEmail:       principal.Email,
		domain.FieldDisplayName: principal.DisplayName,
		domain.FieldPhotoURL:    principal.PhotoURL,
	}
	if snap == nil || !domain.Role(snap.Data.String(domain.FieldRole)).IsValid() {
		fields[domain.FieldRole] = string(s.initialRole(principal.Email))
	}
	if snap == nil || snap.Data.String(domain.FieldCreatedAt) == "" {
		fields[domain.FieldCreatedAt] = s.now().UTC().Format(time.RFC3339Nano)
	}

	if err := s.store.SetDocument(ctx, domain.UsersCollection, principal.UID, fields, true); err != nil {
		return nil, fmt.Errorf("failed to write profile %s: %w", principal.UID, err)
	}
	if snap == nil {
		s.LogInfo(ctx, "User profile created", slog.String("user_id", principal.UID), slog.Any("role", fields[domain.FieldRole]))
	}
	return s.GetProfile(ctx, principal.UID)
}

func (s *userService) UpdateRole(ctx context.Context, actorUID, uid string, role domain.Role) (*domain.UserProfile, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if actorUID == uid {
		return nil, fmt.Errorf("%w: admins cannot change their own role", apperrors.ErrForbidden)
	}
	current, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if current.Role == role {
		return current, nil
	}

	if err := s.store.SetDocument(ctx, domain.UsersCollection, uid, domain.Document{domain.FieldRole: string(role)}, true); err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.String("user_id", uid))
		return nil, fmt.Errorf("failed to update role of %s: %w", uid, err)
	}
	s.LogInfo(ctx, "User role changed",
		slog.String("user_id", uid),
		slog.String("actor_id", actorUID),
		slog.String("from", string(current.Role)),
		slog.String("to", string(role)))
	s.Track(actorUID, utils.EventRoleChanged, map[string]any{"target": uid, "role": string(role)})
	return s.GetProfile(ctx, uid)
}

func (s *userService) DeleteUser(ctx context.Context, actorUID, uid string) error {
	if actorUID == uid {
		return fmt.Errorf("%w: admins cannot delete themselves", apperrors.ErrForbidden)
	}
	if _, err := s.GetProfile(ctx, uid); err != nil {
		return err
	}

	if s.registry != nil {
		s.registry.End(ctx, uid)
	}
	if err := s.dir.DeleteAccount(ctx, uid); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to delete account", slog.String("user_id", uid))
		return fmt.Errorf("failed to delete account %s: %w", uid, err)
	}
	// The Postgres directory removes the document in the same transaction; this covers the others.
	if err := s.store.DeleteDocument(ctx, domain.UsersCollection, uid); err != nil {
		s.LogError(ctx, err, "Failed to delete user document", slog.String("user_id", uid))
		return fmt.Errorf("failed to delete user document %s: %w", uid, err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", uid), slog.String("actor_id", actorUID))
	return nil
}

func (s *userService) initialRole(email string) domain.Role {
	if _, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]; ok {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}
