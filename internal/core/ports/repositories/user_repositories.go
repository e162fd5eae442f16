package repositories

import (
	"context"
	"time"

	"github.com/taleskillz/data_collect_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific non-deleted user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific non-deleted user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves all non-deleted users, newest first.
	FindUsers(ctx context.Context) ([]domain.User, error)

	// FindUsersByStatus retrieves non-deleted users with the given status.
	FindUsersByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error)

	// FindDeletedUsers retrieves soft-deleted users, most recently deleted first.
	FindDeletedUsers(ctx context.Context) ([]domain.User, error)

	// CountActiveByRole counts active, non-deleted users holding the role.
	CountActiveByRole(ctx context.Context, role domain.Role) (int, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates name, role and status of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}

// UserLifecycleManager defines soft-delete operations for users.
type UserLifecycleManager interface {
	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error

	// RecoverUser clears deleted_at so the user re-enters standard listings.
	RecoverUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
