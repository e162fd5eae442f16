package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	"github.com/taleskillz/data_collect_app/internal/models"
)

type PgxSubmissionRepository struct {
	db *pgxpool.Pool
}

func newPgxSubmissionRepository(db *pgxpool.Pool) portsrepo.SubmissionRepositoryFacade {
	return &PgxSubmissionRepository{db: db}
}

// Ensure PgxSubmissionRepository implements portsrepo.SubmissionRepositoryFacade
var _ portsrepo.SubmissionRepositoryFacade = (*PgxSubmissionRepository)(nil)

const submissionColumns = `submission_id, section, level, label, value, unit, frequency, period, year, quarter,
		responsible, disaggregation, notes, status, saved_at,
		submitter_message, reviewer_message, approver_message,
		user_email, assigned_reviewer, assigned_approver,
		submitted_by, submitted_at, reviewed_by, reviewed_at, approved_by, approved_at,
		rejected_by, rejected_at, deleted_by, deleted_at, restored_by, restored_at,
		edited_by, edited_at, created_at, updated_at`

func toDomainSubmission(m models.Submission) domain.Submission {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	stamp := func(by *string, at *time.Time) domain.ActorStamp {
		return domain.ActorStamp{By: deref(by), At: at}
	}
	return domain.Submission{
		SubmissionID:     m.SubmissionID,
		Section:          m.Section,
		Level:            m.Level,
		Label:            m.Label,
		Value:            m.Value,
		Unit:             m.Unit,
		Frequency:        m.Frequency,
		Period:           m.Period,
		Year:             m.Year,
		Quarter:          m.Quarter,
		Responsible:      m.Responsible,
		Disaggregation:   m.Disaggregation,
		Notes:            m.Notes,
		Status:           domain.SubmissionStatus(m.Status),
		SavedAt:          m.SavedAt,
		SubmitterMessage: m.SubmitterMessage,
		ReviewerMessage:  m.ReviewerMessage,
		ApproverMessage:  m.ApproverMessage,
		OwnerEmail:       m.OwnerEmail,
		AssignedReviewer: deref(m.AssignedReviewer),
		AssignedApprover: deref(m.AssignedApprover),
		Submitted:        stamp(m.SubmittedBy, m.SubmittedAt),
		Reviewed:         stamp(m.ReviewedBy, m.ReviewedAt),
		Approved:         stamp(m.ApprovedBy, m.ApprovedAt),
		Rejected:         stamp(m.RejectedBy, m.RejectedAt),
		Deleted:          stamp(m.DeletedBy, m.DeletedAt),
		Restored:         stamp(m.RestoredBy, m.RestoredAt),
		Edited:           stamp(m.EditedBy, m.EditedAt),
		CreatedAt:        m.CreatedAt,
		LastUpdatedAt:    m.UpdatedAt,
	}
}

func scanSubmission(row pgx.Row) (models.Submission, error) {
	var m models.Submission
	err := row.Scan(
		&m.SubmissionID,
		&m.Section, &m.Level, &m.Label, &m.Value, &m.Unit,
		&m.Frequency, &m.Period, &m.Year, &m.Quarter,
		&m.Responsible, &m.Disaggregation, &m.Notes,
		&m.Status, &m.SavedAt,
		&m.SubmitterMessage, &m.ReviewerMessage, &m.ApproverMessage,
		&m.OwnerEmail, &m.AssignedReviewer, &m.AssignedApprover,
		&m.SubmittedBy, &m.SubmittedAt,
		&m.ReviewedBy, &m.ReviewedAt,
		&m.ApprovedBy, &m.ApprovedAt,
		&m.RejectedBy, &m.RejectedAt,
		&m.DeletedBy, &m.DeletedAt,
		&m.RestoredBy, &m.RestoredAt,
		&m.EditedBy, &m.EditedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *PgxSubmissionRepository) SaveSubmission(ctx context.Context, sub domain.Submission) error {
	query := `
        INSERT INTO submissions (
            submission_id, section, level, label, value, unit, frequency, period, year, quarter,
            responsible, disaggregation, notes, status, saved_at,
            submitter_message, reviewer_message, approver_message, user_email,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
                  $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
    `
	_, err := r.db.Exec(ctx, query,
		sub.SubmissionID,
		sub.Section, sub.Level, sub.Label, sub.Value, sub.Unit,
		sub.Frequency, sub.Period, sub.Year, sub.Quarter,
		sub.Responsible, sub.Disaggregation, sub.Notes,
		string(sub.Status), sub.SavedAt,
		sub.SubmitterMessage, sub.ReviewerMessage, sub.ApproverMessage,
		sub.OwnerEmail,
		sub.CreatedAt, sub.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *PgxSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE submission_id = $1;
	`
	m, err := scanSubmission(r.db.QueryRow(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission by ID %s: %w", submissionID, err)
	}

	sub := toDomainSubmission(m)
	return &sub, nil
}

func (r *PgxSubmissionRepository) FindSubmissions(ctx context.Context, filter portsrepo.SubmissionFilter) ([]domain.Submission, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + submissionColumns + ` FROM submissions`)

	conditions := []string{}
	args := []any{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.OwnerEmail != "" {
		args = append(args, filter.OwnerEmail)
		conditions = append(conditions, fmt.Sprintf("user_email = $%d", len(args)))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC;")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	subs := []domain.Submission{}
	for rows.Next() {
		m, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		subs = append(subs, toDomainSubmission(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", rows.Err())
	}
	return subs, nil
}

// buildSubmissionSet turns a partial-changes struct into SET fragments and
// their ordered args. Placeholders start at $1; callers append WHERE args
// after. Nil fields are skipped, so explicit empty strings still write.
func buildSubmissionSet(changes domain.SubmissionChanges) ([]string, []any) {
	fragments := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		fragments = append(fragments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Section != nil {
		add("section", *changes.Section)
	}
	if changes.Level != nil {
		add("level", *changes.Level)
	}
	if changes.Label != nil {
		add("label", *changes.Label)
	}
	if changes.Value != nil {
		add("value", *changes.Value)
	}
	if changes.Unit != nil {
		add("unit", *changes.Unit)
	}
	if changes.Frequency != nil {
		add("frequency", *changes.Frequency)
	}
	if changes.Period != nil {
		add("period", *changes.Period)
	}
	if changes.Year != nil {
		add("year", *changes.Year)
	}
	if changes.Quarter != nil {
		add("quarter", *changes.Quarter)
	}
	if changes.Responsible != nil {
		add("responsible", *changes.Responsible)
	}
	if changes.Disaggregation != nil {
		add("disaggregation", *changes.Disaggregation)
	}
	if changes.Notes != nil {
		add("notes", *changes.Notes)
	}
	if changes.Status != nil {
		add("status", string(*changes.Status))
	}
	if changes.SubmitterMessage != nil {
		add("submitter_message", *changes.SubmitterMessage)
	}
	if changes.ReviewerMessage != nil {
		add("reviewer_message", *changes.ReviewerMessage)
	}
	if changes.ApproverMessage != nil {
		add("approver_message", *changes.ApproverMessage)
	}
	if changes.SubmittedBy != nil {
		add("submitted_by", *changes.SubmittedBy)
	}
	if changes.SubmittedAt != nil {
		add("submitted_at", *changes.SubmittedAt)
	}
	if changes.ReviewedBy != nil {
		add("reviewed_by", *changes.ReviewedBy)
	}
	if changes.ReviewedAt != nil {
		add("reviewed_at", *changes.ReviewedAt)
	}
	if changes.ApprovedBy != nil {
		add("approved_by", *changes.ApprovedBy)
	}
	if changes.ApprovedAt != nil {
		add("approved_at", *changes.ApprovedAt)
	}
	if changes.RejectedBy != nil {
		add("rejected_by", *changes.RejectedBy)
	}
	if changes.RejectedAt != nil {
		add("rejected_at", *changes.RejectedAt)
	}
	if changes.DeletedBy != nil {
		add("deleted_by", *changes.DeletedBy)
	}
	if changes.DeletedAt != nil {
		add("deleted_at", *changes.DeletedAt)
	}
	if changes.RestoredBy != nil {
		add("restored_by", *changes.RestoredBy)
	}
	if changes.RestoredAt != nil {
		add("restored_at", *changes.RestoredAt)
	}
	if changes.EditedBy != nil {
		add("edited_by", *changes.EditedBy)
	}
	if changes.EditedAt != nil {
		add("edited_at", *changes.EditedAt)
	}

	return fragments, args
}

// UpdateWithVersion is the optimistic-token path. Both submission_id and
// saved_at must match; a successful write refreshes saved_at, invalidating
// every token handed out before it.
func (r *PgxSubmissionRepository) UpdateWithVersion(ctx context.Context, submissionID string, savedAt time.Time, changes domain.SubmissionChanges) error {
	fragments, args := buildSubmissionSet(changes)
	if len(fragments) == 0 {
		return fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}
	fragments = append(fragments, "saved_at = NOW()", "updated_at = NOW()")

	args = append(args, submissionID)
	idIdx := len(args)
	args = append(args, savedAt)
	versionIdx := len(args)

	query := fmt.Sprintf(
		"UPDATE submissions SET %s WHERE submission_id = $%d AND saved_at = $%d;",
		strings.Join(fragments, ", "), idIdx, versionIdx,
	)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", submissionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a stale token from a missing row.
		var exists bool
		checkErr := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM submissions WHERE submission_id = $1);", submissionID).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to check submission existence: %w", checkErr)
		}
		if exists {
			return apperrors.ErrVersionConflict
		}
		return apperrors.ErrNotFound
	}
	return nil
}

// Update is the id-only path used by soft delete and restore; the
// optimistic token is deliberately not checked here.
func (r *PgxSubmissionRepository) Update(ctx context.Context, submissionID string, changes domain.SubmissionChanges) error {
	fragments, args := buildSubmissionSet(changes)
	if len(fragments) == 0 {
		return fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}
	fragments = append(fragments, "saved_at = NOW()", "updated_at = NOW()")

	args = append(args, submissionID)
	query := fmt.Sprintf(
		"UPDATE submissions SET %s WHERE submission_id = $%d;",
		strings.Join(fragments, ", "), len(args),
	)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", submissionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
