package services

import (
	"context"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	"github.com/taleskillz/data_collect_app/internal/dto"
)

// SubmissionReaderSvc defines read operations for submissions.
type SubmissionReaderSvc interface {
	// GetSubmissionByID retrieves a submission regardless of status.
	GetSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error)

	// ListSubmissions retrieves submissions matching the filter. Visibility
	// is not restricted by role; clients filter by status tab.
	ListSubmissions(ctx context.Context, filter portsrepo.SubmissionFilter) ([]domain.Submission, error)
}

// SubmissionWorkflowSvc defines the lifecycle transitions.
type SubmissionWorkflowSvc interface {
	// CreateDraft creates a new draft owned by the actor.
	CreateDraft(ctx context.Context, req dto.CreateSubmissionRequest, actor domain.User) (*domain.Submission, error)

	// SaveDraft edits content fields and either keeps the record editable
	// (draft) or submits it, depending on req.Status. Uses the optimistic
	// (id, savedAt) token.
	SaveDraft(ctx context.Context, submissionID string, req dto.UpdateDraftRequest, actor domain.User) (*domain.Submission, error)

	// Review marks a submitted record reviewed or rejected. Reviewer or
	// admin only; uses the optimistic token.
	Review(ctx context.Context, submissionID string, req dto.ReviewRequest, actor domain.User) (*domain.Submission, error)

	// Approve finalizes a reviewed record (approve) or rejects it. Approver
	// or admin only; uses the optimistic token.
	Approve(ctx context.Context, submissionID string, req dto.ApproveRequest, actor domain.User) (*domain.Submission, error)

	// Delete soft-deletes any non-deleted record. Reviewer, approver or
	// admin; updates by id alone, bypassing the optimistic token.
	Delete(ctx context.Context, submissionID string, actor domain.User) (*domain.Submission, error)

	// Restore returns a deleted record to draft. Reviewer, approver or
	// admin; updates by id alone, bypassing the optimistic token.
	Restore(ctx context.Context, submissionID string, actor domain.User) (*domain.Submission, error)
}

// SubmissionSvcFacade combines all submission service interfaces.
type SubmissionSvcFacade interface {
	SubmissionReaderSvc
	SubmissionWorkflowSvc
}
