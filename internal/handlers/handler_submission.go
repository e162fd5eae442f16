package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/middleware"
)

// submissionHandler handles the data-record workflow endpoints.
type submissionHandler struct {
	submissionService portssvc.SubmissionSvcFacade
}

func newSubmissionHandler(ss portssvc.SubmissionSvcFacade) *submissionHandler {
	return &submissionHandler{submissionService: ss}
}

// registerSubmissionRoutes registers the workflow routes. Role allow-lists
// sit on the routes; state and ownership checks live in the service.
func registerSubmissionRoutes(rg *gin.RouterGroup, submissionService portssvc.SubmissionSvcFacade) {
	h := newSubmissionHandler(submissionService)

	reviewerUp := middleware.RequireRoles(domain.RoleReviewer, domain.RoleApprover, domain.RoleAdmin)

	subs := rg.Group("/submissions")
	{
		subs.GET("", h.listSubmissions)
		subs.GET("/:id", h.getSubmission)
		subs.POST("", middleware.RequireRoles(domain.RoleSubmitter, domain.RoleAdmin), h.createSubmission)
		subs.PUT("/:id", middleware.RequireRoles(domain.RoleSubmitter, domain.RoleAdmin), h.saveDraft)
		subs.POST("/:id/review", middleware.RequireRoles(domain.RoleReviewer, domain.RoleAdmin), h.review)
		subs.POST("/:id/approve", middleware.RequireRoles(domain.RoleApprover, domain.RoleAdmin), h.approve)
		subs.DELETE("/:id", reviewerUp, h.deleteSubmission)
		subs.POST("/:id/restore", reviewerUp, h.restoreSubmission)
	}
}

// listSubmissions godoc
// @Summary List submissions
// @Description Lists all submissions; clients filter by status tab. Optional status and owner filters.
// @Tags submissions
// @Produce json
// @Param status query string false "Status filter"
// @Param owner query string false "Owner email filter"
// @Success 200 {object} dto.ListSubmissionsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions [get]
func (h *submissionHandler) listSubmissions(c *gin.Context) {
	var params dto.ListSubmissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	subs, err := h.submissionService.ListSubmissions(c.Request.Context(), portsrepo.SubmissionFilter{
		Status:     domain.SubmissionStatus(params.Status),
		OwnerEmail: params.Owner,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubmissionsResponse(subs))
}

// getSubmission godoc
// @Summary Get a submission
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id} [get]
func (h *submissionHandler) getSubmission(c *gin.Context) {
	sub, err := h.submissionService.GetSubmissionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// createSubmission godoc
// @Summary Create a draft
// @Description Creates a new draft record owned by the caller.
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body dto.CreateSubmissionRequest true "Record content"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions [post]
func (h *submissionHandler) createSubmission(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.CreateDraft(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(sub))
}

// saveDraft godoc
// @Summary Edit or submit a record
// @Description Re-saves content fields and optionally moves the record to submitted. Requires the savedAt token last read.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param submission body dto.UpdateDraftRequest true "Changes"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id} [put]
func (h *submissionHandler) saveDraft(c *gin.Context) {
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.SaveDraft(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// review godoc
// @Summary Review a submitted record
// @Description Marks a submitted record reviewed or rejected, with a mandatory message.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param decision body dto.ReviewRequest true "Decision"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id}/review [post]
func (h *submissionHandler) review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.Review(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// approve godoc
// @Summary Approve or reject a reviewed record
// @Description Finalizes a reviewed record or rejects it, with a mandatory message.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param decision body dto.ApproveRequest true "Decision"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id}/approve [post]
func (h *submissionHandler) approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.Approve(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// deleteSubmission godoc
// @Summary Soft-delete a record
// @Description Moves any non-deleted record to deleted. Updates by id alone.
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id} [delete]
func (h *submissionHandler) deleteSubmission(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.Delete(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// restoreSubmission godoc
// @Summary Restore a deleted record
// @Description Returns a deleted record to draft so it re-enters the editable pool.
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id}/restore [post]
func (h *submissionHandler) restoreSubmission(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	sub, err := h.submissionService.Restore(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}
