package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/core/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/platform/config"
	"github.com/taleskillz/data_collect_app/internal/utils"
)

// --- Mock SessionRepository ---

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	args := m.Called(ctx, tokenHash)
	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserService (session resolution only needs GetUserByID) ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserService) ListDeletedUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserService) GetUserStats(ctx context.Context) (*domain.RoleStats, error) {
	args := m.Called(ctx)
	var stats *domain.RoleStats
	if args.Get(0) != nil {
		stats = args.Get(0).(*domain.RoleStats)
	}
	return stats, args.Error(1)
}

func (m *MockUserService) GetRoleAvailability(ctx context.Context) ([]domain.RoleAvailability, error) {
	args := m.Called(ctx)
	var availability []domain.RoleAvailability
	if args.Get(0) != nil {
		availability = args.Get(0).([]domain.RoleAvailability)
	}
	return availability, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	args := m.Called(ctx, email, name)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
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
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Session Service Suite ---

type SessionServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockSessionRepo *MockSessionRepository
	mockUserService *MockUserService
	service         portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{SessionTTL: time.Hour}
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockUserService = new(MockUserService)
	suite.service = services.NewSessionService(suite.cfg, suite.mockSessionRepo, suite.mockUserService)
}

func (suite *SessionServiceTestSuite) TestCreateSession_StoresHashNotToken() {
	ctx := context.Background()
	user := &domain.User{UserID: "u-1", Status: domain.UserStatusActive}

	var stored domain.Session
	suite.mockSessionRepo.On("SaveSession", ctx, mock.MatchedBy(func(session domain.Session) bool {
		stored = session
		return session.UserID == "u-1" && session.TokenHash != "" && session.ExpiresAt.After(time.Now())
	})).Return(nil).Once()

	rawToken, session, err := suite.service.CreateSession(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(rawToken)
	suite.NotEqual(rawToken, session.TokenHash)
	suite.Equal(utils.HashSessionToken(rawToken), stored.TokenHash)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestResolveSession_Success() {
	ctx := context.Background()
	rawToken := "raw-session-token"
	session := &domain.Session{
		SessionID: "s-1",
		UserID:    "u-1",
		TokenHash: utils.HashSessionToken(rawToken),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	user := &domain.User{UserID: "u-1", Status: domain.UserStatusActive}

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
	suite.mockUserService.On("GetUserByID", ctx, "u-1").Return(user, nil).Once()

	got, err := suite.service.ResolveSession(ctx, rawToken)

	suite.Require().NoError(err)
	suite.Equal("u-1", got.UserID)
}

func (suite *SessionServiceTestSuite) TestResolveSession_EmptyToken() {
	_, err := suite.service.ResolveSession(context.Background(), "")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "FindSessionByTokenHash", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestResolveSession_UnknownToken() {
	ctx := context.Background()

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveSession(ctx, "never-issued")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *SessionServiceTestSuite) TestResolveSession_ExpiredSessionDropped() {
	ctx := context.Background()
	rawToken := "stale-session-token"
	session := &domain.Session{
		SessionID: "s-1",
		UserID:    "u-1",
		TokenHash: utils.HashSessionToken(rawToken),
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, "s-1").Return(nil).Once()

	_, err := suite.service.ResolveSession(ctx, rawToken)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestRevokeSession_DeletesRow() {
	ctx := context.Background()
	rawToken := "raw-session-token"
	session := &domain.Session{SessionID: "s-1", TokenHash: utils.HashSessionToken(rawToken)}

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, session.TokenHash).Return(session, nil).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, "s-1").Return(nil).Once()

	err := suite.service.RevokeSession(ctx, rawToken)

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestRevokeSession_UnknownTokenIsIdempotent() {
	ctx := context.Background()

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RevokeSession(ctx, "already-gone")

	suite.Require().NoError(err)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "DeleteSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestPurgeExpired() {
	ctx := context.Background()

	suite.mockSessionRepo.On("DeleteExpiredSessions", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	removed, err := suite.service.PurgeExpired(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), removed)
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// --- Token Service ---

type TokenServiceTestSuite struct {
	suite.Suite
	cfg     *config.Config
	service portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "data-collect-app-test",
	}
	suite.service = services.NewTokenService(suite.cfg)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrips() {
	user := &domain.User{UserID: "u-1", Status: domain.UserStatusActive}

	token, expiresAt, err := suite.service.GenerateAccessToken(context.Background(), user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("u-1", claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RejectsWrongSecret() {
	user := &domain.User{UserID: "u-1", Status: domain.UserStatusActive}

	token, _, err := suite.service.GenerateAccessToken(context.Background(), user)
	suite.Require().NoError(err)

	_, err = utils.ParseAndValidateJWT(token, "a-different-secret")
	suite.Error(err)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
