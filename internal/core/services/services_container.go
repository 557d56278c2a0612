package services

import (
	"log/slog"

	"github.com/SscSPs/finsync/internal/adapters/identity"
	portsrepo "github.com/SscSPs/finsync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/SscSPs/finsync/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The returned registry owns the live sessions and must be closed on shutdown.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, engine *validation.Engine,
	analytics *utils.PosthogClientWrapper, logger *slog.Logger) (*portssvc.ServiceContainer, *SessionRegistry) {
	registry := NewSessionRegistry(repos.UserDirectory, repos.Documents, logger,
		identity.WithResetNotifier(NewResetLinkLogger(cfg, logger)))

	container := &portssvc.ServiceContainer{}
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.User = NewUserService(repos.Documents, repos.UserDirectory,
		WithAdminEmails(cfg.AdminEmails),
		WithSessionRegistry(registry),
		WithUserAnalytics(analytics),
	)
	container.Auth = NewAuthService(registry, container.Token, container.GoogleOAuth, container.User, analytics)
	container.Sync = NewSyncService(registry, analytics)
	container.Validation = NewValidationService(engine)

	return container, registry
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade        = (*authService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.SyncSvcFacade        = (*syncService)(nil)
	_ portssvc.ValidationSvcFacade  = (*validationService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
)
