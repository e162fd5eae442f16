package domain

import "time"

// Role identifies what a user is allowed to do in the workflow.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleReviewer  Role = "reviewer"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"
)

// Seat limits enforced when assigning roles. There is a single admin
// account; reviewer and approver seats are capped, submitters are not.
const (
	MaxAdmins    = 1
	MaxReviewers = 3
	MaxApprovers = 3
)

// UserStatus is the lifecycle state of an account. Soft deletion is tracked
// separately via DeletedAt so a deleted user keeps its prior status for
// recovery.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
	UserStatusRejected UserStatus = "rejected"
)

// User represents an account in the domain.
type User struct {
	UserID        string     `json:"userID"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	PasswordHash  string     `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsActive reports whether the account may log in and act.
func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RoleStats counts non-deleted users per role.
type RoleStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Submitters int `json:"submitters"`
	Reviewers  int `json:"reviewers"`
	Approvers  int `json:"approvers"`
	Admins     int `json:"admins"`
}

// RoleAvailability describes whether a role has open seats.
type RoleAvailability struct {
	Role      Role `json:"role"`
	Available bool `json:"available"`
	Current   int  `json:"current"`
	Max       int  `json:"max,omitempty"` // zero means uncapped
}
