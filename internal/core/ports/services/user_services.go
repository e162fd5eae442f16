package services

import (
	"context"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
	"github.com/taleskillz/data_collect_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a non-deleted user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a non-deleted user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves all non-deleted users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListPendingUsers retrieves non-deleted users awaiting admin approval.
	ListPendingUsers(ctx context.Context) ([]domain.User, error)

	// ListDeletedUsers retrieves soft-deleted users.
	ListDeletedUsers(ctx context.Context) ([]domain.User, error)

	// GetUserStats aggregates per-role counts over non-deleted users.
	GetUserStats(ctx context.Context) (*domain.RoleStats, error)

	// GetRoleAvailability reports open seats per role.
	GetRoleAvailability(ctx context.Context) ([]domain.RoleAvailability, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a user on behalf of an admin. The seat caps apply.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// RegisterUser self-registers a pending submitter account.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateUser applies name/role/active changes. Role changes are checked
	// against the seat caps; requestingUserID guards admin self-deactivation.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error

	// FindOrCreateGoogleUser resolves a Google-authenticated email to a user,
	// creating a pending submitter account on first sight.
	FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error)
}

// UserLifecycleSvc defines admin lifecycle operations on accounts.
type UserLifecycleSvc interface {
	// ApproveUser activates a pending account.
	ApproveUser(ctx context.Context, userID string) error

	// RejectUser marks a pending account rejected.
	RejectUser(ctx context.Context, userID string) error

	// ReactivateUser re-activates an inactive or rejected account.
	ReactivateUser(ctx context.Context, userID string) error

	// DeleteUser soft-deletes an account. requestingUserID guards admin
	// self-deletion.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// RecoverUser clears the soft-delete marker, restoring the prior role
	// and status.
	RecoverUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser verifies email/password against an active account.
	// Inactive accounts fail with apperrors.ErrForbidden so the caller can
	// surface the pending-approval message; every other failure is
	// apperrors.ErrUnauthorized.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
