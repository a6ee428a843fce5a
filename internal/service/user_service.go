package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// ErrSelfAction is returned when a user tries to delete or demote themselves.
var ErrSelfAction = errors.New("action not allowed on own account")

// Actor identifies who is performing a user-management operation.
type Actor struct {
	UserID int
	Role   model.Role
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
}

type sessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID int) (int, error)
}

// UserService manages login accounts. Operations that touch an ADMIN or
// SUPER_ADMIN account additionally require admins:manage.
type UserService struct {
	repo     repository.UserRepository
	hasher   passwordHasher
	sessions sessionRevoker
	resolver *rbac.Resolver
	stats    StatsInvalidator
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	repo repository.UserRepository,
	hasher passwordHasher,
	sessions sessionRevoker,
	resolver *rbac.Resolver,
	stats StatsInvalidator,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		resolver: resolver,
		stats:    stats,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves a page of users.
func (s *UserService) List(ctx context.Context, q model.ListQuery) ([]model.User, int, error) {
	q.Normalize()
	return s.repo.ListPaginated(ctx, q)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, actor Actor, req *model.CreateUserRequest) (*model.User, error) {
	if err := s.authorizeTarget(actor, req.Role); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int("actor_id", actor.UserID).Int("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	invalidateStats(ctx, s.stats)
	return user, nil
}

// Update modifies an account. Changing the role, deactivating the account or
// resetting the password ends all of its sessions.
func (s *UserService) Update(ctx context.Context, actor Actor, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTarget(actor, user.Role, req.Role); err != nil {
		return nil, err
	}

	deactivating := req.IsActive != nil && !*req.IsActive
	if actor.UserID == id && (req.Role != user.Role || deactivating) {
		return nil, ErrSelfAction
	}

	revoke := req.Role != user.Role || (deactivating && user.IsActive) || req.Password != ""

	// Hash before touching the row; the update below is all-or-nothing.
	if req.Password != "" {
		hash, err := s.hasher.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Name = req.Name
	user.Role = req.Role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if revoke {
		if _, err := s.sessions.RevokeUserSessions(ctx, id); err != nil {
			s.log.Error().Err(err).Int("user_id", id).Msg("failed to revoke sessions after update")
		}
	}

	s.log.Info().Int("actor_id", actor.UserID).Int("user_id", id).Bool("sessions_revoked", revoke).Msg("user updated")
	invalidateStats(ctx, s.stats)
	return user, nil
}

// Delete removes an account and ends its sessions.
func (s *UserService) Delete(ctx context.Context, actor Actor, id int) error {
	if actor.UserID == id {
		return ErrSelfAction
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeTarget(actor, user.Role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.sessions.RevokeUserSessions(ctx, id); err != nil {
		s.log.Error().Err(err).Int("user_id", id).Msg("failed to revoke sessions after delete")
	}

	s.log.Info().Int("actor_id", actor.UserID).Int("user_id", id).Msg("user deleted")
	invalidateStats(ctx, s.stats)
	return nil
}

// RevokeSessions force-logs-out an account.
func (s *UserService) RevokeSessions(ctx context.Context, actor Actor, id int) (int, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.authorizeTarget(actor, user.Role); err != nil {
		return 0, err
	}
	return s.sessions.RevokeUserSessions(ctx, id)
}

// authorizeTarget demands admins:manage when any of roles is privileged.
func (s *UserService) authorizeTarget(actor Actor, roles ...model.Role) error {
	for _, role := range roles {
		if role.IsPrivileged() {
			return s.resolver.Authorize(actor.Role, model.PermissionAdminsManage)
		}
	}
	return nil
}
