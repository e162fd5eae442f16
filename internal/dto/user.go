package dto

import (
	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// CreateUserRequest is the admin user-creation payload. Unlike public
// registration it may pick any role (subject to the seat caps) and the
// account is activated immediately.
type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"fullName" binding:"required"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     domain.Role `json:"role" binding:"required,oneof=submitter reviewer approver admin"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string      `json:"name"`
	Role     *domain.Role `json:"role" binding:"omitempty,oneof=submitter reviewer approver admin"`
	IsActive *bool        `json:"isActive"`
}
