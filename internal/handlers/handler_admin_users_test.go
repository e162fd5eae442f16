package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/handlers"
	"github.com/taleskillz/data_collect_app/internal/platform/config"
)

type AdminUserHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	mockUserService *MockUserService

	admin     domain.User
	submitter domain.User
}

func (suite *AdminUserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = newTestConfig()
	suite.mockUserService = new(MockUserService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User:               suite.mockUserService,
		Submission:         new(MockSubmissionService),
		Token:              new(MockTokenService),
		Session:            new(MockSessionService),
		GoogleOAuthHandler: new(MockGoogleOAuthService),
	})

	suite.admin = domain.User{UserID: "u-adm", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	suite.submitter = domain.User{UserID: "u-sub", Email: "submitter@example.com", Role: domain.RoleSubmitter, Status: domain.UserStatusActive}
}

func (suite *AdminUserHandlerTestSuite) serveAs(actor domain.User, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	suite.mockUserService.On("GetUserByID", mock.Anything, actor.UserID).Return(&actor, nil).Once()

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), actor.UserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AdminUserHandlerTestSuite) TestListUsers_AsAdmin() {
	users := []domain.User{
		{UserID: "u-1", Email: "a@example.com", Role: domain.RoleSubmitter, Status: domain.UserStatusActive},
		{UserID: "u-2", Email: "b@example.com", Role: domain.RoleReviewer, Status: domain.UserStatusActive},
	}
	stats := &domain.RoleStats{Total: 2, Active: 2, Submitters: 1, Reviewers: 1}

	suite.mockUserService.On("ListUsers", mock.Anything).Return(users, nil).Once()
	suite.mockUserService.On("GetUserStats", mock.Anything).Return(stats, nil).Once()

	w := suite.serveAs(suite.admin, http.MethodGet, "/api/v1/admin/users", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListUsersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Users, 2)
	suite.Equal(2, resp.Stats.Total)
}

func (suite *AdminUserHandlerTestSuite) TestListUsers_SubmitterForbidden() {
	w := suite.serveAs(suite.submitter, http.MethodGet, "/api/v1/admin/users", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *AdminUserHandlerTestSuite) TestCreateUser_Success() {
	created := &domain.User{UserID: "u-new", Email: "rev@example.com", Role: domain.RoleReviewer, Status: domain.UserStatusActive}

	suite.mockUserService.On("CreateUser", mock.Anything, mock.MatchedBy(func(req dto.CreateUserRequest) bool {
		return req.Role == domain.RoleReviewer
	})).Return(created, nil).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users",
		dto.CreateUserRequest{Email: "rev@example.com", Name: "New Reviewer", Password: "password123", Role: domain.RoleReviewer})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestCreateUser_RoleCapReached() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users",
		dto.CreateUserRequest{Email: "fourth@example.com", Name: "Fourth", Password: "password123", Role: domain.RoleReviewer})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestCreateUser_DuplicateEmail() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users",
		dto.CreateUserRequest{Email: "dup@example.com", Name: "Dup", Password: "password123", Role: domain.RoleSubmitter})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestUpdateUser_PassesRequestingUserID() {
	name := "Renamed"
	updated := &domain.User{UserID: "u-1", Name: name, Role: domain.RoleSubmitter, Status: domain.UserStatusActive}

	suite.mockUserService.On("UpdateUser", mock.Anything, "u-1", mock.MatchedBy(func(req dto.UpdateUserRequest) bool {
		return req.Name != nil && *req.Name == name
	}), suite.admin.UserID).Return(updated, nil).Once()

	w := suite.serveAs(suite.admin, http.MethodPut, "/api/v1/admin/users/u-1",
		dto.UpdateUserRequest{Name: &name})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AdminUserHandlerTestSuite) TestDeleteUser_SelfDeletionBlocked() {
	suite.mockUserService.On("DeleteUser", mock.Anything, suite.admin.UserID, suite.admin.UserID).
		Return(apperrors.ErrValidation).Once()

	w := suite.serveAs(suite.admin, http.MethodDelete, "/api/v1/admin/users/"+suite.admin.UserID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestApproveUser() {
	suite.mockUserService.On("ApproveUser", mock.Anything, "u-1").Return(nil).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users/u-1/approve", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "true")
}

func (suite *AdminUserHandlerTestSuite) TestApproveUser_NotPending() {
	suite.mockUserService.On("ApproveUser", mock.Anything, "u-1").Return(apperrors.ErrValidation).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users/u-1/approve", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestRejectUser() {
	suite.mockUserService.On("RejectUser", mock.Anything, "u-1").Return(nil).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users/u-1/reject", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestReactivateUser() {
	suite.mockUserService.On("ReactivateUser", mock.Anything, "u-1").Return(nil).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users/u-1/reactivate", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestRecoverUser_NotFound() {
	suite.mockUserService.On("RecoverUser", mock.Anything, "missing").Return(apperrors.ErrNotFound).Once()

	w := suite.serveAs(suite.admin, http.MethodPost, "/api/v1/admin/users/missing/recover", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AdminUserHandlerTestSuite) TestListDeletedUsers() {
	deletedAt := time.Now().Add(-time.Hour)
	users := []domain.User{
		{UserID: "u-1", Email: "gone@example.com", Role: domain.RoleSubmitter, Status: domain.UserStatusActive, DeletedAt: &deletedAt},
	}

	suite.mockUserService.On("ListDeletedUsers", mock.Anything).Return(users, nil).Once()

	w := suite.serveAs(suite.admin, http.MethodGet, "/api/v1/admin/users/deleted", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.NotNil(resp[0].DeletedAt)
}

func (suite *AdminUserHandlerTestSuite) TestGetAvailableRoles() {
	availability := []domain.RoleAvailability{
		{Role: domain.RoleSubmitter, Available: true},
		{Role: domain.RoleReviewer, Available: false, Current: domain.MaxReviewers, Max: domain.MaxReviewers},
		{Role: domain.RoleApprover, Available: true, Current: 1, Max: domain.MaxApprovers},
		{Role: domain.RoleAdmin, Available: false, Current: domain.MaxAdmins, Max: domain.MaxAdmins},
	}

	suite.mockUserService.On("GetRoleAvailability", mock.Anything).Return(availability, nil).Once()

	w := suite.serveAs(suite.admin, http.MethodGet, "/api/v1/admin/roles", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []domain.RoleAvailability
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 4)
}

func TestAdminUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminUserHandlerTestSuite))
}
