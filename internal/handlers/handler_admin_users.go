package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/middleware"
)

// adminUserHandler handles admin account management.
type adminUserHandler struct {
	userService portssvc.UserSvcFacade
}

func newAdminUserHandler(us portssvc.UserSvcFacade) *adminUserHandler {
	return &adminUserHandler{userService: us}
}

// registerAdminUserRoutes registers the admin-only account routes. The
// whole group sits behind RequireRoles(admin).
func registerAdminUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newAdminUserHandler(userService)

	admin := rg.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
	{
		admin.GET("/roles", h.getAvailableRoles)

		users := admin.Group("/users")
		{
			users.GET("", h.listUsers)
			users.POST("", h.createUser)
			users.GET("/pending", h.listPendingUsers)
			users.GET("/deleted", h.listDeletedUsers)
			users.PUT("/:id", h.updateUser)
			users.DELETE("/:id", h.deleteUser)
			users.POST("/:id/approve", h.approveUser)
			users.POST("/:id/reject", h.rejectUser)
			users.POST("/:id/reactivate", h.reactivateUser)
			users.POST("/:id/recover", h.recoverUser)
		}
	}
}

// listUsers godoc
// @Summary List users
// @Description Lists all non-deleted accounts with role stats.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminUserHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	stats, err := h.userService.GetUserStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users, *stats))
}

// listPendingUsers godoc
// @Summary List pending users
// @Description Lists accounts awaiting approval.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /admin/users/pending [get]
func (h *adminUserHandler) listPendingUsers(c *gin.Context) {
	users, err := h.userService.ListPendingUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.ToUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listDeletedUsers godoc
// @Summary List deleted users
// @Description Lists soft-deleted accounts eligible for recovery.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /admin/users/deleted [get]
func (h *adminUserHandler) listDeletedUsers(c *gin.Context) {
	users, err := h.userService.ListDeletedUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.ToUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getAvailableRoles godoc
// @Summary Role availability
// @Description Reports open seats per role for the user creation form.
// @Tags admin
// @Produce json
// @Success 200 {array} domain.RoleAvailability
// @Security BearerAuth
// @Router /admin/roles [get]
func (h *adminUserHandler) getAvailableRoles(c *gin.Context) {
	availability, err := h.userService.GetRoleAvailability(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// createUser godoc
// @Summary Create a user
// @Description Creates an active account with the given role, subject to seat caps.
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [post]
func (h *adminUserHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Changes name, role or active flag. Role changes respect seat caps; admins cannot deactivate themselves.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *adminUserHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes an account; admins cannot delete themselves.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *adminUserHandler) deleteUser(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), actor.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// approveUser godoc
// @Summary Approve a pending user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/approve [post]
func (h *adminUserHandler) approveUser(c *gin.Context) {
	if err := h.userService.ApproveUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// rejectUser godoc
// @Summary Reject a pending user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/reject [post]
func (h *adminUserHandler) rejectUser(c *gin.Context) {
	if err := h.userService.RejectUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// reactivateUser godoc
// @Summary Reactivate an inactive or rejected user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/reactivate [post]
func (h *adminUserHandler) reactivateUser(c *gin.Context) {
	if err := h.userService.ReactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// recoverUser godoc
// @Summary Recover a soft-deleted user
// @Description Clears the deletion marker; the account keeps its prior role and status.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/recover [post]
func (h *adminUserHandler) recoverUser(c *gin.Context) {
	if err := h.userService.RecoverUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
