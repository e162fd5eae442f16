package models

import "time"

// Submission is the database shape of a submissions row. Actor columns are
// nullable because each pair is only written when its transition fires.
type Submission struct {
	SubmissionID string `db:"submission_id"`

	Section        string `db:"section"`
	Level          string `db:"level"`
	Label          string `db:"label"`
	Value          string `db:"value"`
	Unit           string `db:"unit"`
	Frequency      string `db:"frequency"`
	Period         string `db:"period"`
	Year           string `db:"year"`
	Quarter        string `db:"quarter"`
	Responsible    string `db:"responsible"`
	Disaggregation string `db:"disaggregation"`
	Notes          string `db:"notes"`

	Status  string    `db:"status"`
	SavedAt time.Time `db:"saved_at"`

	SubmitterMessage string `db:"submitter_message"`
	ReviewerMessage  string `db:"reviewer_message"`
	ApproverMessage  string `db:"approver_message"`

	OwnerEmail       string  `db:"user_email"`
	AssignedReviewer *string `db:"assigned_reviewer"`
	AssignedApprover *string `db:"assigned_approver"`

	SubmittedBy *string    `db:"submitted_by"`
	SubmittedAt *time.Time `db:"submitted_at"`
	ReviewedBy  *string    `db:"reviewed_by"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	ApprovedBy  *string    `db:"approved_by"`
	ApprovedAt  *time.Time `db:"approved_at"`
	RejectedBy  *string    `db:"rejected_by"`
	RejectedAt  *time.Time `db:"rejected_at"`
	DeletedBy   *string    `db:"deleted_by"`
	DeletedAt   *time.Time `db:"deleted_at"`
	RestoredBy  *string    `db:"restored_by"`
	RestoredAt  *time.Time `db:"restored_at"`
	EditedBy    *string    `db:"edited_by"`
	EditedAt    *time.Time `db:"edited_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
