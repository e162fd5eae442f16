package domain

import "time"

// SubmissionStatus is the workflow state of a data record.
type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "draft"
	StatusSubmitted SubmissionStatus = "submitted"
	StatusReviewed  SubmissionStatus = "reviewed"
	StatusApproved  SubmissionStatus = "approved"
	StatusRejected  SubmissionStatus = "rejected"
	StatusDeleted   SubmissionStatus = "deleted"
)

// ActorStamp records who performed a transition and when. A stamp is set
// when its transition fires and is never cleared, so a record accumulates
// history across repeated transitions (a re-submission after rejection
// overwrites SubmittedBy/At but leaves the earlier ReviewedBy/At intact).
type ActorStamp struct {
	By string     `json:"by,omitempty"`
	At *time.Time `json:"at,omitempty"`
}

// IsSet reports whether the transition behind this stamp ever fired.
func (s ActorStamp) IsSet() bool {
	return s.At != nil
}

// Submission is one collected data record. All content fields are opaque
// free text; the server does not validate them beyond presence where a
// transition requires it.
type Submission struct {
	SubmissionID string `json:"submissionID"`

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

	Status SubmissionStatus `json:"status"`

	// SavedAt doubles as the optimistic concurrency token: version-checked
	// updates must present the value they last read.
	SavedAt time.Time `json:"savedAt"`

	SubmitterMessage string `json:"submitterMessage"`
	ReviewerMessage  string `json:"reviewerMessage"`
	ApproverMessage  string `json:"approverMessage"`

	// OwnerEmail is the creator of the record.
	OwnerEmail       string `json:"user"`
	AssignedReviewer string `json:"assignedReviewer,omitempty"`
	AssignedApprover string `json:"assignedApprover,omitempty"`

	Submitted ActorStamp `json:"submitted,omitempty"`
	Reviewed  ActorStamp `json:"reviewed,omitempty"`
	Approved  ActorStamp `json:"approved,omitempty"`
	Rejected  ActorStamp `json:"rejected,omitempty"`
	Deleted   ActorStamp `json:"deleted,omitempty"`
	Restored  ActorStamp `json:"restored,omitempty"`
	Edited    ActorStamp `json:"edited,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CanReview reports whether a review decision (reviewed or rejected) is
// reachable from the current status. Rejection is additionally allowed
// from reviewed, which ReviewableToRejected covers.
func (s Submission) CanReview() bool {
	return s.Status == StatusSubmitted
}

// CanReject reports whether a reject decision is reachable; both reviewers
// and approvers may reject records that are submitted or already reviewed.
func (s Submission) CanReject() bool {
	return s.Status == StatusSubmitted || s.Status == StatusReviewed
}

// CanApprove reports whether final approval is reachable. Approve is only
// valid from reviewed.
func (s Submission) CanApprove() bool {
	return s.Status == StatusReviewed
}
