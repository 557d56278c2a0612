package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/SscSPs/finsync/internal/utils"
)

// TranslateAuthError returns the user-facing message for the auth code carried by err.
// Unrecognized errors map to the generic auth message.
func TranslateAuthError(t i18n.Translator, err error) string {
	code := apperrors.AuthCodeOf(err)
	return t.Message(i18n.AuthKeyPrefix + strings.TrimPrefix(string(code), "auth/"))
}

// NewResetLinkLogger returns a reset notifier that logs the reset link. Outside production
// the link itself is logged so that the flow can be completed locally.
func NewResetLinkLogger(cfg *config.Config, logger *slog.Logger) func(ctx context.Context, account domain.UserAccount, rawToken string) {
	return func(_ context.Context, account domain.UserAccount, rawToken string) {
		if cfg.IsProduction {
			logger.Warn("Password reset requested but no mail delivery is configured",
				slog.String("uid", account.UID))
			return
		}
		link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(cfg.FrontendBaseURL, "/"), rawToken)
		logger.Info("Password reset link issued",
			slog.String("uid", account.UID),
			slog.String("email", utils.RedactEmail(account.Email)),
			slog.String("link", link))
	}
}

type authService struct {
	BaseService
	registry *SessionRegistry
	tokens   portssvc.TokenSvcFacade
	google   portssvc.GoogleOAuthSvcFacade
	users    portssvc.UserWriterSvc
}

// NewAuthService creates the auth service. Every successful sign-in registers the session
// with registry and ensures the user's profile exists.
func NewAuthService(registry *SessionRegistry, tokens portssvc.TokenSvcFacade, google portssvc.GoogleOAuthSvcFacade,
	users portssvc.UserWriterSvc, analytics *utils.PosthogClientWrapper) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: BaseService{Analytics: analytics},
		registry:    registry,
		tokens:      tokens,
		google:      google,
		users:       users,
	}
}

func (s *authService) SignUp(ctx context.Context, form domain.SignupForm) (*domain.AuthSession, error) {
	session := s.registry.Begin()
	if _, err := session.SignUp(ctx, form.Email, form.Password, form.DisplayName); err != nil {
		s.LogDebug(ctx, "Sign-up rejected", slog.String("code", string(apperrors.AuthCodeOf(err))))
		return nil, err
	}
	authSession, err := s.establish(ctx, s.registry.Adopt(session))
	if err != nil {
		return nil, err
	}
	s.Track(authSession.Principal.UID, utils.EventSignedUp, map[string]any{"provider": string(domain.ProviderLocal)})
	return authSession, nil
}

func (s *authService) Login(ctx context.Context, form domain.LoginForm) (*domain.AuthSession, error) {
	session := s.registry.Begin()
	if _, err := session.SignIn(ctx, form.Email, form.Password); err != nil {
		s.LogDebug(ctx, "Sign-in rejected", slog.String("code", string(apperrors.AuthCodeOf(err))))
		return nil, err
	}
	authSession, err := s.establish(ctx, s.registry.Adopt(session))
	if err != nil {
		return nil, err
	}
	s.Track(authSession.Principal.UID, utils.EventSignedIn, map[string]any{"provider": string(domain.ProviderLocal)})
	return authSession, nil
}

func (s *authService) ResetPassword(ctx context.Context, form domain.ResetPasswordForm) error {
	if err := s.registry.Begin().ResetPassword(ctx, form.Email); err != nil {
		return err
	}
	s.LogInfo(ctx, "Password reset requested", slog.String("email", utils.RedactEmail(form.Email)))
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.registry.Begin().ConfirmPasswordReset(ctx, token, newPassword)
}

func (s *authService) SignInWithGoogleIDToken(ctx context.Context, idToken string) (*domain.AuthSession, error) {
	ext, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.LogError(ctx, err, "Google ID token rejected")
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidCredential, err)
	}
	return s.signInExternal(ctx, *ext)
}

func (s *authService) SignInWithGoogleCode(ctx context.Context, code string) (*domain.AuthSession, error) {
	ext, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Google code exchange failed")
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidCredential, err)
	}
	return s.signInExternal(ctx, *ext)
}

func (s *authService) Logout(ctx context.Context, uid string) error {
	s.registry.End(ctx, uid)
	s.Track(uid, utils.EventSignedOut, nil)
	s.LogInfo(ctx, "User signed out", slog.String("user_id", uid))
	return nil
}

func (s *authService) signInExternal(ctx context.Context, ext domain.ExternalIdentity) (*domain.AuthSession, error) {
	session := s.registry.Begin()
	if _, err := session.SignInWithExternal(ctx, ext); err != nil {
		s.LogDebug(ctx, "External sign-in rejected",
			slog.String("provider", string(ext.Provider)),
			slog.String("code", string(apperrors.AuthCodeOf(err))))
		return nil, err
	}
	authSession, err := s.establish(ctx, s.registry.Adopt(session))
	if err != nil {
		return nil, err
	}
	s.Track(authSession.Principal.UID, utils.EventSignedIn, map[string]any{"provider": string(ext.Provider)})
	return authSession, nil
}

// establish finishes a sign-in: the profile document is created if needed and an access
// token is issued for the principal.
func (s *authService) establish(ctx context.Context, us *UserSession) (*domain.AuthSession, error) {
	principal := us.Identity.CurrentPrincipal()
	if principal == nil {
		return nil, apperrors.NewAuthError(apperrors.AuthUnknown, apperrors.ErrNoPrincipal)
	}

	profile, err := s.users.EnsureProfile(ctx, principal)
	if err != nil {
		s.LogError(ctx, err, "Failed to ensure user profile", slog.String("user_id", principal.UID))
		return nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, err)
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, principal)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", principal.UID))
		return nil, apperrors.NewAuthError(apperrors.AuthUnknown, err)
	}

	s.LogInfo(ctx, "User signed in", slog.String("user_id", principal.UID))
	return &domain.AuthSession{
		Principal:   principal,
		Role:        profile.Role,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
