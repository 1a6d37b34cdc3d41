package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/msrpanel/msr-api/internal/access"
	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/pkg/password"
	"github.com/msrpanel/msr-api/internal/rolegrant"
)

// UserService handles policy-gated user management
type UserService struct {
	repo    user.Repository
	policy  *access.Policy
	granter rolegrant.Granter
}

// NewUserService creates the user management service
func NewUserService(repo user.Repository, policy *access.Policy, granter rolegrant.Granter) *UserService {
	return &UserService{repo: repo, policy: policy, granter: granter}
}

// List returns the users within the actor's visible set
func (s *UserService) List(ctx context.Context, actor *user.User) ([]*user.User, error) {
	return s.repo.List(ctx, s.policy.VisibleUsers(actor))
}

// Get returns one user. A row outside the actor's visible set is
// reported as missing, not forbidden.
func (s *UserService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil || !s.policy.VisibleUsers(actor).Matches(target) {
		return nil, user.ErrNotFound
	}
	return target, nil
}

// Create creates a user account and assigns its role grants
func (s *UserService) Create(ctx context.Context, actor *user.User, req *CreateUserRequest) (*user.User, error) {
	if !s.policy.CanAddUser(actor) {
		return nil, ErrPermissionDenied
	}

	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrUsernameTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		IsActive:     true,
		IsStaff:      true, // panel login
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Manager != nil {
		managerID, err := uuid.Parse(*req.Manager)
		if err != nil {
			return nil, user.ErrInvalidManager
		}
		u.ManagerID = uuid.NullUUID{UUID: managerID, Valid: true}
	}
	if req.Address != nil {
		u.Address = sql.NullString{String: *req.Address, Valid: true}
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = sql.NullString{String: *req.PhoneNumber, Valid: true}
	}

	// Creation-time field enforcement. Only the legacy rule set
	// rewrites anything.
	s.policy.ApplyUserCreateDefaults(actor, u)

	if err := s.validateManagerRef(ctx, u); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.assignGrants(ctx, u)

	return u, nil
}

// Update applies a partial update to a user. Fields read-only for the
// actor are dropped without effect rather than rejected.
func (s *UserService) Update(ctx context.Context, actor *user.User, id uuid.UUID, req *UpdateUserRequest) (*user.User, error) {
	target, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanChangeUser(actor, target) {
		return nil, ErrPermissionDenied
	}

	if req.Username != nil && *req.Username != target.Username {
		existing, err := s.repo.GetByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != target.ID {
			return nil, user.ErrUsernameTaken
		}
		target.Username = *req.Username
	}
	if req.Email != nil {
		target.Email = *req.Email
	}
	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.Address != nil {
		target.Address = sql.NullString{String: *req.Address, Valid: true}
	}
	if req.PhoneNumber != nil {
		target.PhoneNumber = sql.NullString{String: *req.PhoneNumber, Valid: true}
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}

	readonly := s.policy.UserReadonlyFields(actor)
	if req.Role != nil && !readonly.Has(access.FieldRole) {
		target.Role = user.Role(*req.Role)
	}
	if !readonly.Has(access.FieldManager) {
		if req.ClearManager {
			target.ManagerID = uuid.NullUUID{}
		} else if req.Manager != nil {
			managerID, err := uuid.Parse(*req.Manager)
			if err != nil {
				return nil, user.ErrInvalidManager
			}
			target.ManagerID = uuid.NullUUID{UUID: managerID, Valid: true}
		}
	}

	if err := s.validateManagerRef(ctx, target); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	target, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !s.policy.CanDeleteUser(actor, target) {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, target.ID)
}

// Permissions describes the actor's capabilities in the users module
func (s *UserService) Permissions(actor *user.User) ModulePermissions {
	readonly := s.policy.UserReadonlyFields(actor)
	fields := make([]string, 0, len(readonly))
	for f := range readonly {
		fields = append(fields, f)
	}
	return ModulePermissions{
		Visible:        s.policy.ModuleVisible(actor),
		CanAdd:         s.policy.CanAddUser(actor),
		ReadonlyFields: fields,
	}
}

// validateManagerRef checks that a set manager reference points at a
// manager-role user
func (s *UserService) validateManagerRef(ctx context.Context, u *user.User) error {
	if !u.ManagerID.Valid {
		return nil
	}
	if u.ManagerID.UUID == u.ID {
		return user.ErrInvalidManager
	}
	manager, err := s.repo.GetByID(ctx, u.ManagerID.UUID)
	if err != nil {
		return err
	}
	if manager == nil || !manager.IsManager() {
		return user.ErrInvalidManager
	}
	return nil
}

// assignGrants attaches the role label and the fixed permission set
// for manager/staff accounts. Grant failures are logged, not fatal:
// the account exists and grants can be replayed.
func (s *UserService) assignGrants(ctx context.Context, u *user.User) {
	if u.Role != user.RoleManager && u.Role != user.RoleStaff {
		return
	}
	if err := s.granter.AssignRole(ctx, u.ID, string(u.Role)); err != nil {
		log.Error().Err(err).Str("user_id", u.ID.String()).Msg("Failed to assign role")
		return
	}
	if err := s.granter.GrantPermissions(ctx, u.ID, rolegrant.DefaultPermissions()); err != nil {
		log.Error().Err(err).Str("user_id", u.ID.String()).Msg("Failed to grant permissions")
	}
}
