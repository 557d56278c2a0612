package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/SscSPs/finsync/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrGoogleNotConfigured is returned when no Google client id is configured.
var ErrGoogleNotConfigured = errors.New("google client ID is not configured in the application")

// googleUserInfo is the response of the v2 userinfo endpoint.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
	userInfoURL  string
	validate     idTokenValidator
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return newGoogleOAuthService(cfg, google.Endpoint, googleUserInfoURL, idtoken.Validate)
}

func newGoogleOAuthService(cfg *config.Config, endpoint oauth2.Endpoint, userInfoURL string, validate idTokenValidator) *googleOAuthService {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		validate:    validate,
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthService) GenerateStateString(_ context.Context) (string, error) {
	// 16 bytes -> 32 char hex string
	state, err := utils.RandomHex(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(_ context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges the authorization code and reads the profile from the userinfo endpoint.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, ErrGoogleNotConfigured
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("google user info is missing id or email")
	}

	return &domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: info.ID,
		Email:          info.Email,
		EmailVerified:  info.VerifiedEmail,
		DisplayName:    info.Name,
		PhotoURL:       info.Picture,
	}, nil
}

// VerifyIDToken validates an ID token issued to this client.
func (s *googleOAuthService) VerifyIDToken(ctx context.Context, idTokenString string) (*domain.ExternalIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, ErrGoogleNotConfigured
	}

	payload, err := s.validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return externalIdentityFromPayload(payload)
}

func externalIdentityFromPayload(payload *idtoken.Payload) (*domain.ExternalIdentity, error) {
	email, _ := payload.Claims["email"].(string)
	if payload.Subject == "" || email == "" {
		return nil, errors.New("google ID token is missing subject or email")
	}
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: payload.Subject,
		Email:          email,
		EmailVerified:  verified,
		DisplayName:    name,
		PhotoURL:       picture,
	}, nil
}
