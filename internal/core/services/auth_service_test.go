package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/finsync/internal/adapters/documentstore/memory"
	"github.com/SscSPs/finsync/internal/adapters/identity"
	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/services"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/SscSPs/finsync/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock GoogleOAuthSvcFacade ---
type MockGoogleOAuth struct {
	mock.Mock
}

func (m *MockGoogleOAuth) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuth) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuth) ExchangeCode(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	var ext *domain.ExternalIdentity
	if args.Get(0) != nil {
		ext = args.Get(0).(*domain.ExternalIdentity)
	}
	return ext, args.Error(1)
}

func (m *MockGoogleOAuth) VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	var ext *domain.ExternalIdentity
	if args.Get(0) != nil {
		ext = args.Get(0).(*domain.ExternalIdentity)
	}
	return ext, args.Error(1)
}

// fixture wires the services over in-memory adapters.
type fixture struct {
	cfg        *config.Config
	dir        *identity.MemoryDirectory
	store      *memory.Store
	registry   *services.SessionRegistry
	google     *MockGoogleOAuth
	users      portssvc.UserSvcFacade
	auth       portssvc.AuthSvcFacade
	sync       portssvc.SyncSvcFacade
	resetLinks []string
}

func newFixture(adminEmails ...string) *fixture {
	f := &fixture{
		cfg: &config.Config{
			JWTSecret:         "test-secret",
			JWTExpiryDuration: time.Hour,
			JWTIssuer:         "finsync",
			AdminEmails:       adminEmails,
		},
		dir:    identity.NewMemoryDirectory(),
		store:  memory.NewStore(),
		google: new(MockGoogleOAuth),
	}
	f.registry = services.NewSessionRegistry(f.dir, f.store, slog.Default(),
		identity.WithBcryptCost(bcrypt.MinCost),
		identity.WithResetNotifier(func(_ context.Context, _ domain.UserAccount, raw string) {
			f.resetLinks = append(f.resetLinks, raw)
		}),
	)
	f.users = services.NewUserService(f.store, f.dir,
		services.WithAdminEmails(adminEmails),
		services.WithSessionRegistry(f.registry),
	)
	f.auth = services.NewAuthService(f.registry, services.NewTokenService(f.cfg), f.google, f.users, nil)
	f.sync = services.NewSyncService(f.registry, nil)
	return f
}

func (f *fixture) signUp(ctx context.Context, email string) *domain.AuthSession {
	session, err := f.auth.SignUp(ctx, domain.SignupForm{
		DisplayName:     "Test User",
		Email:           email,
		Password:        "Secret#123",
		ConfirmPassword: "Secret#123",
	})
	if err != nil {
		panic(err)
	}
	return session
}

type AuthServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	f   *fixture
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.f = newFixture("boss@example.com")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestSignUp_CreatesProfileAndToken() {
	session := suite.f.signUp(suite.ctx, "Ana@Example.com")

	suite.Require().NotNil(session.Principal)
	suite.Equal("ana@example.com", session.Principal.Email)
	suite.Equal(domain.RoleUser, session.Role)
	suite.NotEmpty(session.AccessToken)
	suite.True(session.ExpiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(session.AccessToken, "test-secret", "finsync")
	suite.Require().NoError(err)
	suite.Equal(session.Principal.UID, claims.Subject)

	profile, err := suite.f.users.GetProfile(suite.ctx, session.Principal.UID)
	suite.Require().NoError(err)
	suite.Equal("Test User", profile.DisplayName)
	suite.False(profile.CreatedAt.IsZero())
	suite.Equal(1, suite.f.registry.Len())
}

func (suite *AuthServiceTestSuite) TestSignUp_AdminEmailGetsAdminRole() {
	session := suite.f.signUp(suite.ctx, "boss@example.com")
	suite.Equal(domain.RoleAdmin, session.Role)
}

func (suite *AuthServiceTestSuite) TestSignUp_DuplicateEmail() {
	suite.f.signUp(suite.ctx, "ana@example.com")

	_, err := suite.f.auth.SignUp(suite.ctx, domain.SignupForm{Email: "ana@example.com", Password: "Secret#123"})
	suite.Equal(apperrors.AuthEmailAlreadyInUse, apperrors.AuthCodeOf(err))
}

func (suite *AuthServiceTestSuite) TestLogin() {
	created := suite.f.signUp(suite.ctx, "ana@example.com")
	suite.Require().NoError(suite.f.auth.Logout(suite.ctx, created.Principal.UID))

	session, err := suite.f.auth.Login(suite.ctx, domain.LoginForm{Email: "ana@example.com", Password: "Secret#123"})
	suite.Require().NoError(err)
	suite.Equal(created.Principal.UID, session.Principal.UID)

	_, err = suite.f.auth.Login(suite.ctx, domain.LoginForm{Email: "ana@example.com", Password: "wrong-pass"})
	suite.Equal(apperrors.AuthInvalidCredential, apperrors.AuthCodeOf(err))

	_, err = suite.f.auth.Login(suite.ctx, domain.LoginForm{Email: "nobody@example.com", Password: "Secret#123"})
	suite.Equal(apperrors.AuthUserNotFound, apperrors.AuthCodeOf(err))
}

func (suite *AuthServiceTestSuite) TestLogout_EndsSession() {
	session := suite.f.signUp(suite.ctx, "ana@example.com")
	suite.Equal(1, suite.f.registry.Len())

	suite.Require().NoError(suite.f.auth.Logout(suite.ctx, session.Principal.UID))
	suite.Equal(0, suite.f.registry.Len())

	// A valid token still restores the session on the next request.
	state, err := suite.f.sync.State(suite.ctx, session.Principal.UID)
	suite.Require().NoError(err)
	suite.Equal(domain.SyncConnected, state)
}

func (suite *AuthServiceTestSuite) TestPasswordResetFlow() {
	suite.f.signUp(suite.ctx, "ana@example.com")

	suite.Require().NoError(suite.f.auth.ResetPassword(suite.ctx, domain.ResetPasswordForm{Email: "ana@example.com"}))
	suite.Require().Len(suite.f.resetLinks, 1)

	suite.Require().NoError(suite.f.auth.ConfirmPasswordReset(suite.ctx, suite.f.resetLinks[0], "NewSecret#1"))
	_, err := suite.f.auth.Login(suite.ctx, domain.LoginForm{Email: "ana@example.com", Password: "NewSecret#1"})
	suite.NoError(err)

	err = suite.f.auth.ConfirmPasswordReset(suite.ctx, suite.f.resetLinks[0], "Another#22")
	suite.Equal(apperrors.AuthExpiredActionCode, apperrors.AuthCodeOf(err))
}

func (suite *AuthServiceTestSuite) TestResetPassword_UnknownEmailIsSilent() {
	suite.NoError(suite.f.auth.ResetPassword(suite.ctx, domain.ResetPasswordForm{Email: "nobody@example.com"}))
	suite.Empty(suite.f.resetLinks)
}

func (suite *AuthServiceTestSuite) TestGoogleIDToken_CreatesAccount() {
	ext := &domain.ExternalIdentity{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: "g-123",
		Email:          "gina@example.com",
		EmailVerified:  true,
		DisplayName:    "Gina",
		PhotoURL:       "https://example.com/gina.png",
	}
	suite.f.google.On("VerifyIDToken", mock.Anything, "id-token").Return(ext, nil).Twice()

	first, err := suite.f.auth.SignInWithGoogleIDToken(suite.ctx, "id-token")
	suite.Require().NoError(err)
	suite.Equal("Gina", first.Principal.DisplayName)

	second, err := suite.f.auth.SignInWithGoogleIDToken(suite.ctx, "id-token")
	suite.Require().NoError(err)
	suite.Equal(first.Principal.UID, second.Principal.UID)

	profile, err := suite.f.users.GetProfile(suite.ctx, first.Principal.UID)
	suite.Require().NoError(err)
	suite.Equal("https://example.com/gina.png", profile.PhotoURL)
	suite.f.google.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestGoogleCode_ExchangeFailure() {
	suite.f.google.On("ExchangeCode", mock.Anything, "bad-code").Return(nil, errors.New("invalid_grant"))

	_, err := suite.f.auth.SignInWithGoogleCode(suite.ctx, "bad-code")
	suite.Equal(apperrors.AuthInvalidCredential, apperrors.AuthCodeOf(err))
	suite.Equal(0, suite.f.registry.Len())
}

func (suite *AuthServiceTestSuite) TestTranslateAuthError() {
	catalog := i18n.MustNewCatalog(i18n.LocaleEN)
	en := catalog.Translator(i18n.LocaleEN)
	vi := catalog.Translator(i18n.LocaleVI)

	err := apperrors.NewAuthError(apperrors.AuthInvalidCredential, nil)
	suite.Equal("Incorrect email or password", services.TranslateAuthError(en, err))
	suite.Equal("Email hoặc mật khẩu không đúng", services.TranslateAuthError(vi, err))
	suite.Equal("Something went wrong, please try again", services.TranslateAuthError(en, errors.New("boom")))
}
