package domain

import "time"

// SubmissionChanges is a partial update to a submission. Nil means "leave
// the column alone"; a pointer to the zero value is an explicit clear, so
// writing an empty string is expressible.
type SubmissionChanges struct {
	Section        *string
	Level          *string
	Label          *string
	Value          *string
	Unit           *string
	Frequency      *string
	Period         *string
	Year           *string
	Quarter        *string
	Responsible    *string
	Disaggregation *string
	Notes          *string

	Status *SubmissionStatus

	SubmitterMessage *string
	ReviewerMessage  *string
	ApproverMessage  *string

	SubmittedBy *string
	SubmittedAt *time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ApprovedBy  *string
	ApprovedAt  *time.Time
	RejectedBy  *string
	RejectedAt  *time.Time
	DeletedBy   *string
	DeletedAt   *time.Time
	RestoredBy  *string
	RestoredAt  *time.Time
	EditedBy    *string
	EditedAt    *time.Time
}
