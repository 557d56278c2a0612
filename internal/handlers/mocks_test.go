package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) session(args mock.Arguments) (*domain.AuthSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthSession), args.Error(1)
}

func (m *MockAuthService) SignUp(ctx context.Context, form domain.SignupForm) (*domain.AuthSession, error) {
	return m.session(m.Called(ctx, form))
}
func (m *MockAuthService) Login(ctx context.Context, form domain.LoginForm) (*domain.AuthSession, error) {
	return m.session(m.Called(ctx, form))
}
func (m *MockAuthService) ResetPassword(ctx context.Context, form domain.ResetPasswordForm) error {
	return m.Called(ctx, form).Error(0)
}
func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}
func (m *MockAuthService) SignInWithGoogleIDToken(ctx context.Context, idToken string) (*domain.AuthSession, error) {
	return m.session(m.Called(ctx, idToken))
}
func (m *MockAuthService) SignInWithGoogleCode(ctx context.Context, code string) (*domain.AuthSession, error) {
	return m.session(m.Called(ctx, code))
}
func (m *MockAuthService) Logout(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalIdentity), args.Error(1)
}
func (m *MockGoogleOAuthService) VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalIdentity), args.Error(1)
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) profile(args mock.Arguments) (*domain.UserProfile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	return m.profile(m.Called(ctx, uid))
}
func (m *MockUserService) GetRole(ctx context.Context, uid string) (domain.Role, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(domain.Role), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit int, pageToken string) ([]domain.UserProfile, string, error) {
	args := m.Called(ctx, limit, pageToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.UserProfile), args.String(1), args.Error(2)
}
func (m *MockUserService) EnsureProfile(ctx context.Context, principal *domain.Principal) (*domain.UserProfile, error) {
	return m.profile(m.Called(ctx, principal))
}
func (m *MockUserService) UpdateRole(ctx context.Context, actorUID, uid string, role domain.Role) (*domain.UserProfile, error) {
	return m.profile(m.Called(ctx, actorUID, uid, role))
}
func (m *MockUserService) DeleteUser(ctx context.Context, actorUID, uid string) error {
	return m.Called(ctx, actorUID, uid).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) State(ctx context.Context, uid string) (domain.SyncState, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(domain.SyncState), args.Error(1)
}
func (m *MockSyncService) Push(ctx context.Context, uid string, record domain.Document) (bool, domain.SyncState, error) {
	args := m.Called(ctx, uid, record)
	return args.Bool(0), args.Get(1).(domain.SyncState), args.Error(2)
}
func (m *MockSyncService) Pull(ctx context.Context, uid string) (domain.Document, domain.SyncState, error) {
	args := m.Called(ctx, uid)
	var record domain.Document
	if args.Get(0) != nil {
		record = args.Get(0).(domain.Document)
	}
	return record, args.Get(1).(domain.SyncState), args.Error(2)
}
func (m *MockSyncService) Watch(ctx context.Context, uid string) (<-chan domain.SyncEvent, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.SyncEvent), args.Error(1)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

func testSession(uid, email string) *domain.AuthSession {
	return &domain.AuthSession{
		Principal:   &domain.Principal{UID: uid, Email: email, DisplayName: "Test User"},
		Role:        domain.RoleUser,
		AccessToken: "access-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}
