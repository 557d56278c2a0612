package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/services"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/handlers"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/SscSPs/finsync/internal/platform/config"
	"github.com/SscSPs/finsync/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret"
	testIssuer    = "finsync-test"
	testUserID    = "user-1"
	testAdminID   = "admin-1"
)

// closeNotifyingRecorder lets gin's Stream run against a recorder.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyingRecorder() *closeNotifyingRecorder {
	return &closeNotifyingRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool {
	return r.closed
}

type HandlerTestSuite struct {
	suite.Suite
	catalog *i18n.Catalog
	router  *gin.Engine
	auth    *MockAuthService
	google  *MockGoogleOAuthService
	users   *MockUserService
	sync    *MockSyncService
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.catalog = i18n.MustNewCatalog(i18n.LocaleEN)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		s.Require().NoError(s.catalog.RegisterValidator(v))
	}
}

func (s *HandlerTestSuite) SetupTest() {
	s.auth = new(MockAuthService)
	s.google = new(MockGoogleOAuthService)
	s.users = new(MockUserService)
	s.sync = new(MockSyncService)

	container := &portssvc.ServiceContainer{
		Auth:        s.auth,
		GoogleOAuth: s.google,
		User:        s.users,
		Sync:        s.sync,
		Validation:  services.NewValidationService(validation.NewEngine(s.catalog)),
	}
	cfg := &config.Config{
		IsProduction:      true,
		JWTSecret:         testJWTSecret,
		JWTIssuer:         testIssuer,
		LoginRateLimit:    "1000-M",
		ValidateRateLimit: "1000-M",
	}

	s.router = gin.New()
	s.router.Use(middleware.LocaleMiddleware(s.catalog))
	analytics := utils.InitializePosthogClient("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, container, analytics))
}

func (s *HandlerTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.google.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.sync.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) token(uid string) string {
	token, _, err := utils.GenerateJWT(uid, uid+"@example.com", testJWTSecret, time.Hour, testIssuer)
	s.Require().NoError(err)
	return token
}

func (s *HandlerTestSuite) do(method, path string, body any, uid string, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(uid))
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// --- auth ---

func (s *HandlerTestSuite) TestSignUp_InvalidFormReturnsFieldErrors() {
	w := s.do(http.MethodPost, "/api/v1/auth/signup", dto.SignupRequest{
		DisplayName:     "Al",
		Email:           "not-an-email",
		Password:        "weak",
		ConfirmPassword: "other",
	}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invalid request", resp.Error)
	s.Equal("Email address is invalid", resp.Fields[validation.FieldEmail])
	s.Contains(resp.Fields, validation.FieldPassword)
	s.Equal("Passwords do not match", resp.Fields[validation.FieldConfirmPassword])
	s.auth.AssertNotCalled(s.T(), "SignUp", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestSignUp_Success() {
	form := domain.SignupForm{
		DisplayName:     "Test User",
		Email:           "new@example.com",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	}
	s.auth.On("SignUp", mock.Anything, form).Return(testSession("uid-new", form.Email), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/signup", dto.SignupRequest{
		DisplayName:     form.DisplayName,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	}, "")

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal("access-token", resp.Token)
	s.Equal("uid-new", resp.User.UID)
	s.Equal(domain.RoleUser, resp.User.Role)
}

func (s *HandlerTestSuite) TestSignUp_EmailInUseIsConflict() {
	s.auth.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse, nil)).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/signup", dto.SignupRequest{
		DisplayName:     "Test User",
		Email:           "taken@example.com",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	}, "")

	s.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal(string(apperrors.AuthEmailAlreadyInUse), resp.Code)
}

func (s *HandlerTestSuite) TestLogin_InvalidCredentialIsLocalized() {
	s.auth.On("Login", mock.Anything, domain.LoginForm{Email: "user@example.com", Password: "secret1"}).
		Return(nil, apperrors.NewAuthError(apperrors.AuthInvalidCredential, nil)).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "user@example.com", Password: "secret1"}, "",
		"Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(i18n.LocaleVI, w.Header().Get("Content-Language"))
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Email hoặc mật khẩu không đúng", resp.Error)
	s.Equal(string(apperrors.AuthInvalidCredential), resp.Code)
}

func (s *HandlerTestSuite) TestLogin_NetworkFailureIsUnavailable() {
	s.auth.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAuthError(apperrors.AuthNetworkRequestFail, fmt.Errorf("db down"))).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "user@example.com", Password: "secret1"}, "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerTestSuite) TestLogin_MalformedBody() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":`, "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestResetPassword_Accepted() {
	s.auth.On("ResetPassword", mock.Anything, domain.ResetPasswordForm{Email: "user@example.com"}).Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/reset-password", dto.ResetPasswordRequest{Email: "user@example.com"}, "")

	s.Equal(http.StatusAccepted, w.Code)
	var resp dto.MessageResponse
	s.decode(w, &resp)
	s.Equal("If an account exists for this email, a reset link has been sent", resp.Message)
}

func (s *HandlerTestSuite) TestConfirmPasswordReset() {
	w := s.do(http.MethodPost, "/api/v1/auth/reset-password/confirm",
		dto.ConfirmPasswordResetRequest{Token: "tok", Password: "Str0ng!Pass", ConfirmPassword: "different"}, "")
	s.Equal(http.StatusBadRequest, w.Code)

	s.auth.On("ConfirmPasswordReset", mock.Anything, "stale", "Str0ng!Pass").
		Return(apperrors.NewAuthError(apperrors.AuthExpiredActionCode, nil)).Once()
	w = s.do(http.MethodPost, "/api/v1/auth/reset-password/confirm",
		dto.ConfirmPasswordResetRequest{Token: "stale", Password: "Str0ng!Pass", ConfirmPassword: "Str0ng!Pass"}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal(string(apperrors.AuthExpiredActionCode), resp.Code)

	s.auth.On("ConfirmPasswordReset", mock.Anything, "fresh", "Str0ng!Pass").Return(nil).Once()
	w = s.do(http.MethodPost, "/api/v1/auth/reset-password/confirm",
		dto.ConfirmPasswordResetRequest{Token: "fresh", Password: "Str0ng!Pass", ConfirmPassword: "Str0ng!Pass"}, "")
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerTestSuite) TestLogout() {
	w := s.do(http.MethodPost, "/api/v1/auth/logout", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	s.auth.On("Logout", mock.Anything, testUserID).Return(nil).Once()
	w = s.do(http.MethodPost, "/api/v1/auth/logout", nil, testUserID)
	s.Equal(http.StatusNoContent, w.Code)
}

// --- google ---

func (s *HandlerTestSuite) TestGoogleLoginURL_SetsStateCookie() {
	s.google.On("GenerateStateString", mock.Anything).Return("state-123", nil).Once()
	s.google.On("GetGoogleLoginURL", mock.Anything, "state-123").Return("https://accounts.example/auth?state=state-123").Once()

	w := s.do(http.MethodGet, "/api/v1/auth/google/login", nil, "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.GoogleLoginURLResponse
	s.decode(w, &resp)
	s.Contains(resp.URL, "state-123")
	s.Contains(w.Header().Get("Set-Cookie"), "oauth_state=state-123")
	s.Contains(w.Header().Get("Set-Cookie"), "HttpOnly")
}

func (s *HandlerTestSuite) TestGoogleExchangeCode_StateMismatch() {
	w := s.do(http.MethodPost, "/api/v1/auth/google/exchange-code",
		dto.GoogleExchangeCodeRequest{Code: "code", State: "forged"}, "", "Cookie", "oauth_state=expected")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.auth.AssertNotCalled(s.T(), "SignInWithGoogleCode", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestGoogleExchangeCode_Success() {
	s.auth.On("SignInWithGoogleCode", mock.Anything, "code").Return(testSession("g-1", "g@example.com"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/google/exchange-code",
		dto.GoogleExchangeCodeRequest{Code: "code", State: "expected"}, "", "Cookie", "oauth_state=expected")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Set-Cookie"), "oauth_state=;")
}

func (s *HandlerTestSuite) TestGoogleIDToken_RequiresToken() {
	w := s.do(http.MethodPost, "/api/v1/auth/google", dto.GoogleIDTokenRequest{}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Contains(resp.Fields, "IDToken")
}

// --- sync ---

func (s *HandlerTestSuite) TestSyncRoutesRequireAuth() {
	w := s.do(http.MethodGet, "/api/v1/sync/state", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestSyncState() {
	s.sync.On("State", mock.Anything, testUserID).Return(domain.SyncConnected, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sync/state", nil, testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SyncStateResponse
	s.decode(w, &resp)
	s.Equal(domain.SyncConnected, resp.State)
}

func (s *HandlerTestSuite) TestSyncPush() {
	isSnapshot := mock.MatchedBy(func(d domain.Document) bool { return d["balance"] == float64(120000) })
	s.sync.On("Push", mock.Anything, testUserID, isSnapshot).Return(true, domain.SyncSynced, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sync/push", dto.PushRequest{Record: map[string]any{"balance": 120000}}, testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.PushResponse
	s.decode(w, &resp)
	s.True(resp.Success)
	s.Equal(domain.SyncSynced, resp.State)
}

func (s *HandlerTestSuite) TestSyncPush_StoreFailure() {
	s.sync.On("Push", mock.Anything, testUserID, mock.Anything).Return(false, domain.SyncError, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/sync/push", dto.PushRequest{Record: map[string]any{"a": 1}}, testUserID)

	s.Equal(http.StatusServiceUnavailable, w.Code)
	var resp dto.PushResponse
	s.decode(w, &resp)
	s.False(resp.Success)
	s.Equal(domain.SyncError, resp.State)
}

func (s *HandlerTestSuite) TestSyncPush_RequiresRecord() {
	w := s.do(http.MethodPost, "/api/v1/sync/push", `{}`, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestSyncPull() {
	s.sync.On("Pull", mock.Anything, testUserID).Return(nil, domain.SyncNoData, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sync/pull", nil, testUserID)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"state":"no_data","record":null}`, w.Body.String())
}

func (s *HandlerTestSuite) TestSyncPull_StoreFailure() {
	s.sync.On("Pull", mock.Anything, testUserID).Return(nil, domain.SyncError, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/sync/pull", nil, testUserID)

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerTestSuite) TestSyncEvents_StreamsUntilClosed() {
	events := make(chan domain.SyncEvent, 2)
	events <- domain.SyncEvent{Type: domain.SyncEventState, State: domain.SyncConnected, At: time.Now()}
	events <- domain.SyncEvent{Type: domain.SyncEventRecord, Record: domain.Document{"balance": 1.0}, At: time.Now()}
	close(events)
	s.sync.On("Watch", mock.Anything, testUserID).Return((<-chan domain.SyncEvent)(events), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/events?access_token="+s.token(testUserID), nil)
	w := newCloseNotifyingRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "event:state")
	s.Contains(body, `"state":"connected"`)
	s.Contains(body, "event:record")
	s.Contains(w.Header().Get("Content-Type"), "text/event-stream")
}

// --- validation ---

func (s *HandlerTestSuite) TestValidateEntity_Valid() {
	date := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	w := s.do(http.MethodPost, "/api/v1/validate/transaction",
		fmt.Sprintf(`{"type":"expense","category":"Food","amount":"50000","note":"Lunch","date":%q}`, date), "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ValidationResponse
	s.decode(w, &resp)
	s.True(resp.IsValid)
	s.Empty(resp.Errors)
}

func (s *HandlerTestSuite) TestValidateEntity_LocalizedErrors() {
	payload := `{"name":"Card","balance":1000,"apr":"18","minPay":2000}`

	w := s.do(http.MethodPost, "/api/v1/validate/debt", payload, "")
	s.Equal(http.StatusOK, w.Code)
	var en dto.ValidationResponse
	s.decode(w, &en)
	s.False(en.IsValid)
	s.Equal("Minimum payment cannot exceed the balance", en.Errors["minPay"])

	w = s.do(http.MethodPost, "/api/v1/validate/debt?lang=vi", payload, "")
	s.Equal(http.StatusOK, w.Code)
	var vi dto.ValidationResponse
	s.decode(w, &vi)
	s.False(vi.IsValid)
	s.NotEmpty(vi.Errors["minPay"])
	s.NotEqual(en.Errors["minPay"], vi.Errors["minPay"])
}

func (s *HandlerTestSuite) TestValidateEntity_UnknownKind() {
	w := s.do(http.MethodPost, "/api/v1/validate/portfolio", `{}`, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestValidateEntity_MalformedPayload() {
	w := s.do(http.MethodPost, "/api/v1/validate/bill", `{"name":`, "")
	s.Equal(http.StatusBadRequest, w.Code)
}

// --- users ---

func (s *HandlerTestSuite) TestGetMe() {
	s.users.On("GetProfile", mock.Anything, testUserID).
		Return(&domain.UserProfile{UID: testUserID, Email: "u@example.com", Role: domain.RoleUser}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/users/me", nil, testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Equal(testUserID, resp.UID)
	s.Nil(resp.CreatedAt)
}

func (s *HandlerTestSuite) TestAdminRoutes_ForbiddenForUsers() {
	s.users.On("GetRole", mock.Anything, testUserID).Return(domain.RoleUser, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/users", nil, testUserID)

	s.Equal(http.StatusForbidden, w.Code)
	s.users.AssertNotCalled(s.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestAdminListUsers() {
	s.users.On("GetRole", mock.Anything, testAdminID).Return(domain.RoleAdmin, nil).Once()
	s.users.On("ListUsers", mock.Anything, 2, "").
		Return([]domain.UserProfile{{UID: "a"}, {UID: "b"}}, "next", nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/users?limit=2", nil, testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListUsersResponse
	s.decode(w, &resp)
	s.Len(resp.Users, 2)
	s.Require().NotNil(resp.NextPageToken)
	s.Equal("next", *resp.NextPageToken)
}

func (s *HandlerTestSuite) TestAdminListUsers_LimitOutOfRange() {
	s.users.On("GetRole", mock.Anything, testAdminID).Return(domain.RoleAdmin, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/users?limit=500", nil, testAdminID)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestAdminUpdateRole() {
	s.users.On("GetRole", mock.Anything, testAdminID).Return(domain.RoleAdmin, nil).Twice()
	s.users.On("UpdateRole", mock.Anything, testAdminID, testUserID, domain.RoleAdmin).
		Return(&domain.UserProfile{UID: testUserID, Role: domain.RoleAdmin}, nil).Once()
	s.users.On("UpdateRole", mock.Anything, testAdminID, testUserID, domain.Role("owner")).
		Return(nil, fmt.Errorf("%w: unknown role", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPut, "/api/v1/admin/users/"+testUserID+"/role", dto.UpdateRoleRequest{Role: domain.RoleAdmin}, testAdminID)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Equal(domain.RoleAdmin, resp.Role)

	w = s.do(http.MethodPut, "/api/v1/admin/users/"+testUserID+"/role", dto.UpdateRoleRequest{Role: "owner"}, testAdminID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestAdminDeleteUser() {
	s.users.On("GetRole", mock.Anything, testAdminID).Return(domain.RoleAdmin, nil).Times(3)
	s.users.On("DeleteUser", mock.Anything, testAdminID, testUserID).Return(nil).Once()
	s.users.On("DeleteUser", mock.Anything, testAdminID, testAdminID).Return(apperrors.ErrForbidden).Once()
	s.users.On("DeleteUser", mock.Anything, testAdminID, "ghost").Return(apperrors.ErrNotFound).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/admin/users/"+testUserID, nil, testAdminID).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/admin/users/"+testAdminID, nil, testAdminID).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/admin/users/ghost", nil, testAdminID).Code)
}

// --- misc ---

func (s *HandlerTestSuite) TestHealthAndHome() {
	w := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())

	w = s.do(http.MethodGet, "/api/v1", nil, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestExpiredTokenRejected() {
	token, _, err := utils.GenerateJWT(testUserID, "u@example.com", testJWTSecret, -time.Minute, testIssuer)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
