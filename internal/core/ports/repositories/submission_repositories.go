package repositories

import (
	"context"
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// SubmissionFilter narrows FindSubmissions. Zero values mean "no filter".
type SubmissionFilter struct {
	Status     domain.SubmissionStatus
	OwnerEmail string
}

// SubmissionReader defines read operations for submissions.
type SubmissionReader interface {
	// FindSubmissionByID retrieves a submission by ID regardless of status.
	FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error)

	// FindSubmissions retrieves submissions matching the filter, newest first.
	FindSubmissions(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
}

// SubmissionWriter defines write operations for submissions.
type SubmissionWriter interface {
	// SaveSubmission persists a new submission row.
	SaveSubmission(ctx context.Context, sub domain.Submission) error

	// UpdateWithVersion applies the partial changes to the row matching
	// both id and savedAt, refreshing saved_at. Returns
	// apperrors.ErrVersionConflict when the row exists but savedAt no
	// longer matches, apperrors.ErrNotFound when the row is absent.
	UpdateWithVersion(ctx context.Context, submissionID string, savedAt time.Time, changes domain.SubmissionChanges) error

	// Update applies the partial changes by id alone, refreshing saved_at.
	// This deliberately bypasses the optimistic token; soft delete and
	// restore use it so they always win over a pending edit.
	Update(ctx context.Context, submissionID string, changes domain.SubmissionChanges) error
}

// SubmissionRepositoryFacade combines all submission repository interfaces.
type SubmissionRepositoryFacade interface {
	SubmissionReader
	SubmissionWriter
}
