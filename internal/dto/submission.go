package dto

import (
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// CreateSubmissionRequest creates a new draft. Content fields are opaque
// free text; none are individually required at draft time.
type CreateSubmissionRequest struct {
	Section        string `json:"section"`
	Level          string `json:"level"`
	Label          string `json:"label" binding:"required"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	Frequency      string `json:"frequency"`
	Period         string `json:"period"`
	Year           string `json:"year"`
	Quarter        string `json:"quarter"`
	Responsible    string `json:"responsible"`
	Disaggregation string `json:"disaggregation"`
	Notes          string `json:"notes"`

	SubmitterMessage string `json:"submitterMessage"`
}

// UpdateDraftRequest edits content fields and optionally moves the record
// from draft to submitted. Pointer fields distinguish "not provided" from
// an explicit clear, so writing an empty string works. SavedAt is the
// optimistic concurrency token the caller last read.
type UpdateDraftRequest struct {
	SavedAt time.Time               `json:"savedAt" binding:"required"`
	Status  domain.SubmissionStatus `json:"status" binding:"required,oneof=draft submitted"`

	SubmitterMessage *string `json:"submitterMessage"`

	Section        *string `json:"section"`
	Level          *string `json:"level"`
	Label          *string `json:"label"`
	Value          *string `json:"value"`
	Unit           *string `json:"unit"`
	Frequency      *string `json:"frequency"`
	Period         *string `json:"period"`
	Year           *string `json:"year"`
	Quarter        *string `json:"quarter"`
	Responsible    *string `json:"responsible"`
	Disaggregation *string `json:"disaggregation"`
	Notes          *string `json:"notes"`
}

// ReviewRequest carries a reviewer's decision. The message is mandatory
// server-side for both outcomes.
type ReviewRequest struct {
	SavedAt time.Time `json:"savedAt" binding:"required"`
	Action  string    `json:"action" binding:"required,oneof=reviewed rejected"`
	Message string    `json:"message" binding:"required"`
}

// ApproveRequest carries an approver's decision. The message is mandatory
// server-side for both outcomes.
type ApproveRequest struct {
	SavedAt time.Time `json:"savedAt" binding:"required"`
	Action  string    `json:"action" binding:"required,oneof=approve reject"`
	Message string    `json:"message" binding:"required"`
}

// ListSubmissionsParams are the optional listing filters.
type ListSubmissionsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=draft submitted reviewed approved rejected deleted"`
	Owner  string `form:"owner" binding:"omitempty,email"`
}

// ActorStampResponse is the outward shape of one transition stamp.
type ActorStampResponse struct {
	By string     `json:"by,omitempty"`
	At *time.Time `json:"at,omitempty"`
}

// SubmissionResponse is the outward-facing shape of a submission.
type SubmissionResponse struct {
	SubmissionID string `json:"id"`

	Section        string `json:"section"`
	Level          string `json:"level"`
	Label          string `json:"label"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	Frequency      string `json:"frequency"`
	Period         string `json:"period"`
	Year           string `json:"year"`
	Quarter        string `json:"quarter"`
	Responsible    string `json:"responsible"`
	Disaggregation string `json:"disaggregation"`
	Notes          string `json:"notes"`

	Status  domain.SubmissionStatus `json:"status"`
	SavedAt time.Time               `json:"savedAt"`

	SubmitterMessage string `json:"submitterMessage"`
	ReviewerMessage  string `json:"reviewerMessage"`
	ApproverMessage  string `json:"approverMessage"`

	OwnerEmail       string `json:"user"`
	AssignedReviewer string `json:"assignedReviewer,omitempty"`
	AssignedApprover string `json:"assignedApprover,omitempty"`

	Submitted ActorStampResponse `json:"submitted"`
	Reviewed  ActorStampResponse `json:"reviewed"`
	Approved  ActorStampResponse `json:"approved"`
	Rejected  ActorStampResponse `json:"rejected"`
	Deleted   ActorStampResponse `json:"deleted"`
	Restored  ActorStampResponse `json:"restored"`
	Edited    ActorStampResponse `json:"edited"`

	CreatedAt time.Time `json:"createdAt"`
}

func toStampResponse(s domain.ActorStamp) ActorStampResponse {
	return ActorStampResponse{By: s.By, At: s.At}
}

// ToSubmissionResponse converts a domain.Submission to its response DTO.
func ToSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:     sub.SubmissionID,
		Section:          sub.Section,
		Level:            sub.Level,
		Label:            sub.Label,
		Value:            sub.Value,
		Unit:             sub.Unit,
		Frequency:        sub.Frequency,
		Period:           sub.Period,
		Year:             sub.Year,
		Quarter:          sub.Quarter,
		Responsible:      sub.Responsible,
		Disaggregation:   sub.Disaggregation,
		Notes:            sub.Notes,
		Status:           sub.Status,
		SavedAt:          sub.SavedAt,
		SubmitterMessage: sub.SubmitterMessage,
		ReviewerMessage:  sub.ReviewerMessage,
		ApproverMessage:  sub.ApproverMessage,
		OwnerEmail:       sub.OwnerEmail,
		AssignedReviewer: sub.AssignedReviewer,
		AssignedApprover: sub.AssignedApprover,
		Submitted:        toStampResponse(sub.Submitted),
		Reviewed:         toStampResponse(sub.Reviewed),
		Approved:         toStampResponse(sub.Approved),
		Rejected:         toStampResponse(sub.Rejected),
		Deleted:          toStampResponse(sub.Deleted),
		Restored:         toStampResponse(sub.Restored),
		Edited:           toStampResponse(sub.Edited),
		CreatedAt:        sub.CreatedAt,
	}
}

// ListSubmissionsResponse wraps the submission listing.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// ToListSubmissionsResponse converts a slice of domain submissions.
func ToListSubmissionsResponse(subs []domain.Submission) ListSubmissionsResponse {
	responses := make([]SubmissionResponse, len(subs))
	for i := range subs {
		responses[i] = ToSubmissionResponse(&subs[i])
	}
	return ListSubmissionsResponse{Submissions: responses}
}
