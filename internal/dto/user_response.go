package dto

import (
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// UserResponse is the outward-facing shape of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID    string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	IsActive  bool              `json:"isActive"`
	CreatedAt time.Time         `json:"createdAt"`
	DeletedAt *time.Time        `json:"deletedAt,omitempty"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Status:    user.Status,
		IsActive:  user.IsActive(),
		CreatedAt: user.CreatedAt,
		DeletedAt: user.DeletedAt,
	}
}

// ListUsersResponse wraps the admin user listing, mirroring the stats block
// the admin screen renders next to the table.
type ListUsersResponse struct {
	Users          []UserResponse   `json:"users"`
	Stats          domain.RoleStats `json:"stats"`
	AvailableRoles []domain.Role    `json:"availableRoles"`
}

// ToListUsersResponse converts domain users plus stats into the listing DTO.
func ToListUsersResponse(users []domain.User, stats domain.RoleStats) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
		Stats: stats,
		AvailableRoles: []domain.Role{
			domain.RoleSubmitter,
			domain.RoleReviewer,
			domain.RoleApprover,
			domain.RoleAdmin,
		},
	}
}
