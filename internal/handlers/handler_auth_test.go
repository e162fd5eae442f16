package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/handlers"
	"github.com/taleskillz/data_collect_app/internal/platform/config"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) ListDeletedUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) GetUserStats(ctx context.Context) (*domain.RoleStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleStats), args.Error(1)
}
func (m *MockUserService) GetRoleAvailability(ctx context.Context) ([]domain.RoleAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleAvailability), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ApproveUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) RejectUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) ReactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) RecoverUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock SessionService ---

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	args := m.Called(ctx, user)
	var session *domain.Session
	if args.Get(1) != nil {
		session = args.Get(1).(*domain.Session)
	}
	return args.String(0), session, args.Error(2)
}
func (m *MockSessionService) ResolveSession(ctx context.Context, rawToken string) (*domain.User, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockSessionService) RevokeSession(ctx context.Context, rawToken string) error {
	args := m.Called(ctx, rawToken)
	return args.Error(0)
}
func (m *MockSessionService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock GoogleOAuthService ---

type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Shared test wiring ---

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "dca-test",
		SessionCookieName: "dca_session",
		SessionTTL:        time.Hour,
		IsProduction:      true, // skips swagger route registration
	}
}

// generateTestToken creates a signed JWT for the test user.
func generateTestToken(t interface{ FailNow() }, userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dca-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.FailNow()
	}
	return signed
}

// --- Test Suite ---

type AuthHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	cfg                *config.Config
	mockUserService    *MockUserService
	mockTokenService   *MockTokenService
	mockSessionService *MockSessionService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = newTestConfig()
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.mockSessionService = new(MockSessionService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User:               suite.mockUserService,
		Submission:         new(MockSubmissionService),
		Token:              suite.mockTokenService,
		Session:            suite.mockSessionService,
		GoogleOAuthHandler: new(MockGoogleOAuthService),
	})
}

func (suite *AuthHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: "u-1", Email: "a@example.com", Role: domain.RoleSubmitter, Status: domain.UserStatusActive}
	session := &domain.Session{SessionID: "s-1", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}

	suite.mockUserService.On("AuthenticateUser", mock.Anything, "a@example.com", "password123").Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("access-token", time.Now().Add(time.Hour), nil).Once()
	suite.mockSessionService.On("CreateSession", mock.Anything, user).Return("raw-session-token", session, nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "a@example.com", Password: "password123"})

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access-token", resp.Token)
	suite.Equal("a@example.com", resp.User.Email)

	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)
	suite.Equal(suite.cfg.SessionCookieName, cookies[0].Name)
	suite.Equal("raw-session-token", cookies[0].Value)
	suite.True(cookies[0].HttpOnly)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "a@example.com", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "a@example.com", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid email or password")
}

func (suite *AuthHandlerTestSuite) TestLogin_PendingAccount() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "pending@example.com", "password123").Return(nil, apperrors.ErrForbidden).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "pending@example.com", Password: "password123"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "pending approval")
}

func (suite *AuthHandlerTestSuite) TestLogin_MalformedBody() {
	w := suite.postJSON("/api/v1/auth/login", gin.H{"email": "not-an-email"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_CreatesPendingAccount() {
	user := &domain.User{UserID: "u-1", Email: "new@example.com", Name: "New User", Role: domain.RoleSubmitter, Status: domain.UserStatusPending}

	suite.mockUserService.On("RegisterUser", mock.Anything, mock.MatchedBy(func(req dto.RegisterRequest) bool {
		return req.Email == "new@example.com"
	})).Return(user, nil).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{Name: "New User", Email: "new@example.com", Password: "password123"})

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.UserStatusPending), string(resp.Status))
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUserService.On("RegisterUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{Name: "Dup", Email: "dup@example.com", Password: "password123"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_RevokesSessionAndClearsCookie() {
	user := &domain.User{UserID: "u-1", Role: domain.RoleSubmitter, Status: domain.UserStatusActive}

	// The middleware resolves the cookie, then the handler revokes it.
	suite.mockSessionService.On("ResolveSession", mock.Anything, "raw-session-token").Return(user, nil).Once()
	suite.mockSessionService.On("RevokeSession", mock.Anything, "raw-session-token").Return(nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: suite.cfg.SessionCookieName, Value: "raw-session-token"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)
	suite.Equal("", cookies[0].Value)
	suite.Negative(cookies[0].MaxAge)
	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestChangePassword_Success() {
	user := &domain.User{UserID: "u-1", Role: domain.RoleSubmitter, Status: domain.UserStatusActive}

	suite.mockUserService.On("GetUserByID", mock.Anything, "u-1").Return(user, nil).Once()
	suite.mockUserService.On("ChangePassword", mock.Anything, "u-1", mock.MatchedBy(func(req dto.ChangePasswordRequest) bool {
		return req.NewPassword == "newpassword"
	})).Return(nil).Once()

	payload, _ := json.Marshal(dto.ChangePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword", ConfirmPassword: "newpassword"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/change-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), "u-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestChangePassword_WrongOldPassword() {
	user := &domain.User{UserID: "u-1", Role: domain.RoleSubmitter, Status: domain.UserStatusActive}

	suite.mockUserService.On("GetUserByID", mock.Anything, "u-1").Return(user, nil).Once()
	suite.mockUserService.On("ChangePassword", mock.Anything, "u-1", mock.Anything).Return(apperrors.ErrValidation).Once()

	payload, _ := json.Marshal(dto.ChangePasswordRequest{OldPassword: "guess", NewPassword: "newpassword", ConfirmPassword: "newpassword"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/change-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), "u-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestAuthenticatedRoute_NoCredentials() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestAuthenticatedRoute_InactiveAccount() {
	user := &domain.User{UserID: "u-1", Role: domain.RoleSubmitter, Status: domain.UserStatusInactive}

	suite.mockUserService.On("GetUserByID", mock.Anything, "u-1").Return(user, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), "u-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Account is not active")
}

func (suite *AuthHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "ok")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
