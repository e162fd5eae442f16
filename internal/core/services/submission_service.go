package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
)

type submissionService struct {
	submissionRepo portsrepo.SubmissionRepositoryFacade
}

// NewSubmissionService creates the submission workflow service.
func NewSubmissionService(submissionRepo portsrepo.SubmissionRepositoryFacade) portssvc.SubmissionSvcFacade {
	return &submissionService{submissionRepo: submissionRepo}
}

var _ portssvc.SubmissionSvcFacade = (*submissionService)(nil)

func ptr[T any](v T) *T { return &v }

// --- SubmissionReaderSvc ---

func (s *submissionService) GetSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

func (s *submissionService) ListSubmissions(ctx context.Context, filter portsrepo.SubmissionFilter) ([]domain.Submission, error) {
	subs, err := s.submissionRepo.FindSubmissions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// --- SubmissionWorkflowSvc ---

func (s *submissionService) CreateDraft(ctx context.Context, req dto.CreateSubmissionRequest, actor domain.User) (*domain.Submission, error) {
	now := time.Now()
	sub := domain.Submission{
		SubmissionID:     uuid.NewString(),
		Section:          req.Section,
		Level:            req.Level,
		Label:            req.Label,
		Value:            req.Value,
		Unit:             req.Unit,
		Frequency:        req.Frequency,
		Period:           req.Period,
		Year:             req.Year,
		Quarter:          req.Quarter,
		Responsible:      req.Responsible,
		Disaggregation:   req.Disaggregation,
		Notes:            req.Notes,
		Status:           domain.StatusDraft,
		SavedAt:          now,
		SubmitterMessage: req.SubmitterMessage,
		OwnerEmail:       actor.Email,
		CreatedAt:        now,
		LastUpdatedAt:    now,
	}

	if err := s.submissionRepo.SaveSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return &sub, nil
}

// contentChanges copies the content-field pointers of an update request into
// a changes struct. Nil pointers stay nil, so untouched columns are skipped
// while explicit empty strings still write through.
func contentChanges(req dto.UpdateDraftRequest) domain.SubmissionChanges {
	return domain.SubmissionChanges{
		Section:          req.Section,
		Level:            req.Level,
		Label:            req.Label,
		Value:            req.Value,
		Unit:             req.Unit,
		Frequency:        req.Frequency,
		Period:           req.Period,
		Year:             req.Year,
		Quarter:          req.Quarter,
		Responsible:      req.Responsible,
		Disaggregation:   req.Disaggregation,
		Notes:            req.Notes,
		SubmitterMessage: req.SubmitterMessage,
	}
}

func (s *submissionService) SaveDraft(ctx context.Context, submissionID string, req dto.UpdateDraftRequest, actor domain.User) (*domain.Submission, error) {
	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission for edit: %w", err)
	}
	if sub.OwnerEmail != actor.Email && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only the owner may edit this record: %w", apperrors.ErrForbidden)
	}

	// Editable states: draft, rejected (re-submission) and submitted
	// (edit-in-place without a status change).
	switch sub.Status {
	case domain.StatusDraft, domain.StatusSubmitted, domain.StatusRejected:
	default:
		return nil, fmt.Errorf("record in status %s is not editable: %w", sub.Status, apperrors.ErrInvalidTransition)
	}
	if req.Status == domain.StatusDraft && sub.Status != domain.StatusDraft {
		return nil, fmt.Errorf("cannot move a %s record back to draft: %w", sub.Status, apperrors.ErrInvalidTransition)
	}

	now := time.Now()
	changes := contentChanges(req)
	changes.EditedBy = ptr(actor.Email)
	changes.EditedAt = ptr(now)

	if req.Status == domain.StatusSubmitted && sub.Status != domain.StatusSubmitted {
		changes.Status = ptr(domain.StatusSubmitted)
		changes.SubmittedBy = ptr(actor.Email)
		changes.SubmittedAt = ptr(now)
	}

	if err := s.submissionRepo.UpdateWithVersion(ctx, submissionID, req.SavedAt, changes); err != nil {
		return nil, err
	}
	return s.submissionRepo.FindSubmissionByID(ctx, submissionID)
}

func requireMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("a message is required for this decision: %w", apperrors.ErrValidation)
	}
	return nil
}

// guardSelfDecision blocks reviewers and approvers from deciding on their
// own records. Admins are exempt.
func guardSelfDecision(sub *domain.Submission, actor domain.User) error {
	if actor.Role != domain.RoleAdmin && sub.OwnerEmail == actor.Email {
		return fmt.Errorf("cannot decide on your own submission: %w", apperrors.ErrForbidden)
	}
	return nil
}

func (s *submissionService) Review(ctx context.Context, submissionID string, req dto.ReviewRequest, actor domain.User) (*domain.Submission, error) {
	if err := requireMessage(req.Message); err != nil {
		return nil, err
	}

	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission for review: %w", err)
	}
	if err := guardSelfDecision(sub, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	changes := domain.SubmissionChanges{
		ReviewerMessage: ptr(req.Message),
	}
	switch req.Action {
	case "reviewed":
		if !sub.CanReview() {
			return nil, fmt.Errorf("cannot review a %s record: %w", sub.Status, apperrors.ErrInvalidTransition)
		}
		changes.Status = ptr(domain.StatusReviewed)
		changes.ReviewedBy = ptr(actor.Email)
		changes.ReviewedAt = ptr(now)
	case "rejected":
		if !sub.CanReject() {
			return nil, fmt.Errorf("cannot reject a %s record: %w", sub.Status, apperrors.ErrInvalidTransition)
		}
		changes.Status = ptr(domain.StatusRejected)
		changes.RejectedBy = ptr(actor.Email)
		changes.RejectedAt = ptr(now)
	default:
		return nil, fmt.Errorf("unknown review action %q: %w", req.Action, apperrors.ErrValidation)
	}

	if err := s.submissionRepo.UpdateWithVersion(ctx, submissionID, req.SavedAt, changes); err != nil {
		return nil, err
	}
	return s.submissionRepo.FindSubmissionByID(ctx, submissionID)
}

func (s *submissionService) Approve(ctx context.Context, submissionID string, req dto.ApproveRequest, actor domain.User) (*domain.Submission, error) {
	if err := requireMessage(req.Message); err != nil {
		return nil, err
	}

	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission for approval: %w", err)
	}
	if err := guardSelfDecision(sub, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	changes := domain.SubmissionChanges{
		ApproverMessage: ptr(req.Message),
	}
	switch req.Action {
	case "approve":
		if !sub.CanApprove() {
			return nil, fmt.Errorf("cannot approve a %s record: %w", sub.Status, apperrors.ErrInvalidTransition)
		}
		changes.Status = ptr(domain.StatusApproved)
		changes.ApprovedBy = ptr(actor.Email)
		changes.ApprovedAt = ptr(now)
	case "reject":
		if !sub.CanReject() {
			return nil, fmt.Errorf("cannot reject a %s record: %w", sub.Status, apperrors.ErrInvalidTransition)
		}
		changes.Status = ptr(domain.StatusRejected)
		changes.RejectedBy = ptr(actor.Email)
		changes.RejectedAt = ptr(now)
	default:
		return nil, fmt.Errorf("unknown approval action %q: %w", req.Action, apperrors.ErrValidation)
	}

	if err := s.submissionRepo.UpdateWithVersion(ctx, submissionID, req.SavedAt, changes); err != nil {
		return nil, err
	}
	return s.submissionRepo.FindSubmissionByID(ctx, submissionID)
}

func (s *submissionService) Delete(ctx context.Context, submissionID string, actor domain.User) (*domain.Submission, error) {
	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission for deletion: %w", err)
	}
	if sub.Status == domain.StatusDeleted {
		return nil, fmt.Errorf("record is already deleted: %w", apperrors.ErrInvalidTransition)
	}

	now := time.Now()
	changes := domain.SubmissionChanges{
		Status:    ptr(domain.StatusDeleted),
		DeletedBy: ptr(actor.Email),
		DeletedAt: ptr(now),
	}
	if err := s.submissionRepo.Update(ctx, submissionID, changes); err != nil {
		return nil, err
	}
	return s.submissionRepo.FindSubmissionByID(ctx, submissionID)
}

func (s *submissionService) Restore(ctx context.Context, submissionID string, actor domain.User) (*domain.Submission, error) {
	sub, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission for restore: %w", err)
	}
	if sub.Status != domain.StatusDeleted {
		return nil, fmt.Errorf("only deleted records can be restored: %w", apperrors.ErrInvalidTransition)
	}

	now := time.Now()
	changes := domain.SubmissionChanges{
		Status:     ptr(domain.StatusDraft),
		RestoredBy: ptr(actor.Email),
		RestoredAt: ptr(now),
	}
	if err := s.submissionRepo.Update(ctx, submissionID, changes); err != nil {
		return nil, err
	}
	return s.submissionRepo.FindSubmissionByID(ctx, submissionID)
}
