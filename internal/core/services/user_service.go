package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taleskillz/data_collect_app/internal/apperrors"
	"github.com/taleskillz/data_collect_app/internal/core/domain"
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/dto"
	"github.com/taleskillz/data_collect_app/internal/utils"
)

// roleCaps maps each capped role to its seat limit. Submitters are uncapped.
var roleCaps = map[domain.Role]int{
	domain.RoleAdmin:    domain.MaxAdmins,
	domain.RoleReviewer: domain.MaxReviewers,
	domain.RoleApprover: domain.MaxApprovers,
}

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service backed by the given repository.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// ensureRoleCapacity fails with ErrValidation when activating one more user
// in a capped role would exceed its seat limit.
func (s *userService) ensureRoleCapacity(ctx context.Context, role domain.Role) error {
	limit, capped := roleCaps[role]
	if !capped {
		return nil
	}
	current, err := s.userRepo.CountActiveByRole(ctx, role)
	if err != nil {
		return fmt.Errorf("failed to count active users for role %s: %w", role, err)
	}
	if current >= limit {
		return fmt.Errorf("no %s seats available (limit %d): %w", role, limit, apperrors.ErrValidation)
	}
	return nil
}

// --- UserReaderSvc ---

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsersByStatus(ctx, domain.UserStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	return users, nil
}

func (s *userService) ListDeletedUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindDeletedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserStats(ctx context.Context) (*domain.RoleStats, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for stats: %w", err)
	}

	stats := domain.RoleStats{Total: len(users)}
	for _, u := range users {
		if u.IsActive() {
			stats.Active++
		}
		switch u.Role {
		case domain.RoleSubmitter:
			stats.Submitters++
		case domain.RoleReviewer:
			stats.Reviewers++
		case domain.RoleApprover:
			stats.Approvers++
		case domain.RoleAdmin:
			stats.Admins++
		}
	}
	return &stats, nil
}

func (s *userService) GetRoleAvailability(ctx context.Context) ([]domain.RoleAvailability, error) {
	availability := make([]domain.RoleAvailability, 0, 4)
	for _, role := range []domain.Role{domain.RoleSubmitter, domain.RoleReviewer, domain.RoleApprover, domain.RoleAdmin} {
		limit, capped := roleCaps[role]
		if !capped {
			availability = append(availability, domain.RoleAvailability{Role: role, Available: true})
			continue
		}
		current, err := s.userRepo.CountActiveByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("failed to count active users for role %s: %w", role, err)
		}
		availability = append(availability, domain.RoleAvailability{
			Role:      role,
			Available: current < limit,
			Current:   current,
			Max:       limit,
		})
	}
	return availability, nil
}

// --- UserWriterSvc ---

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.ensureRoleCapacity(ctx, req.Role); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Email:         req.Email,
		Name:          req.Name,
		Role:          req.Role,
		Status:        domain.UserStatusActive,
		PasswordHash:  hash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email %s is already registered: %w", req.Email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Email:         req.Email,
		Name:          req.Name,
		Role:          domain.RoleSubmitter,
		Status:        domain.UserStatusPending,
		PasswordHash:  hash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email %s is already registered: %w", req.Email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil && *req.Role != user.Role {
		if user.IsActive() {
			if err := s.ensureRoleCapacity(ctx, *req.Role); err != nil {
				return nil, err
			}
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		if !*req.IsActive {
			if user.Role == domain.RoleAdmin && user.UserID == requestingUserID {
				return nil, fmt.Errorf("admin cannot deactivate their own account: %w", apperrors.ErrValidation)
			}
			user.Status = domain.UserStatusInactive
		} else if !user.IsActive() {
			if err := s.ensureRoleCapacity(ctx, user.Role); err != nil {
				return nil, err
			}
			user.Status = domain.UserStatusActive
		}
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("new password and confirmation do not match: %w", apperrors.ErrValidation)
	}
	if req.NewPassword == req.OldPassword {
		return fmt.Errorf("new password must differ from the old one: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for password change: %w", err)
	}
	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return fmt.Errorf("old password is incorrect: %w", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to store new password hash: %w", err)
	}
	return nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	// First sign-in: create a pending submitter with no usable password.
	now := time.Now()
	newUser := domain.User{
		UserID:        uuid.NewString(),
		Email:         email,
		Name:          name,
		Role:          domain.RoleSubmitter,
		Status:        domain.UserStatusPending,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	return &newUser, nil
}

// --- UserLifecycleSvc ---

func (s *userService) ApproveUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for approval: %w", err)
	}
	if user.Status != domain.UserStatusPending {
		return fmt.Errorf("only pending accounts can be approved: %w", apperrors.ErrValidation)
	}
	if err := s.ensureRoleCapacity(ctx, user.Role); err != nil {
		return err
	}

	user.Status = domain.UserStatusActive
	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to approve user: %w", err)
	}
	return nil
}

func (s *userService) RejectUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for rejection: %w", err)
	}
	if user.Status != domain.UserStatusPending {
		return fmt.Errorf("only pending accounts can be rejected: %w", apperrors.ErrValidation)
	}

	user.Status = domain.UserStatusRejected
	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to reject user: %w", err)
	}
	return nil
}

func (s *userService) ReactivateUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for reactivation: %w", err)
	}
	if user.Status != domain.UserStatusInactive && user.Status != domain.UserStatusRejected {
		return fmt.Errorf("only inactive or rejected accounts can be reactivated: %w", apperrors.ErrValidation)
	}
	if err := s.ensureRoleCapacity(ctx, user.Role); err != nil {
		return err
	}

	user.Status = domain.UserStatusActive
	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to reactivate user: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if user.Role == domain.RoleAdmin && user.UserID == requestingUserID {
		return fmt.Errorf("admin cannot delete their own account: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *userService) RecoverUser(ctx context.Context, userID string) error {
	deleted, err := s.userRepo.FindDeletedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deleted users: %w", err)
	}
	var target *domain.User
	for i := range deleted {
		if deleted[i].UserID == userID {
			target = &deleted[i]
			break
		}
	}
	if target == nil {
		return apperrors.ErrNotFound
	}

	// Recovery restores the prior role and status, so an active seat in a
	// capped role must still be free.
	if target.IsActive() {
		if err := s.ensureRoleCapacity(ctx, target.Role); err != nil {
			return err
		}
	}

	if err := s.userRepo.RecoverUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to recover user: %w", err)
	}
	return nil
}

// --- UserAuthSvc ---

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive() {
		// Pending, inactive and rejected accounts authenticate but may not
		// log in; callers surface the account state to the user.
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
