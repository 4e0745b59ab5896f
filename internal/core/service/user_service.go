package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// UserService implements the user CRUD use cases. Validation always runs on
// the complete document right before it is written.
type UserService struct {
	repo      ports.UserRepository
	cache     ports.UserCache
	validator *domain.UserValidator
	logger    zerolog.Logger
}

// NewUserService wires a UserService. cache may be nil to disable caching.
func NewUserService(repo ports.UserRepository, cache ports.UserCache, validator *domain.UserValidator, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, validator: validator, logger: logger}
}

var _ ports.UserService = (*UserService)(nil)

// Create validates and persists a new user.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Username:   input.Username,
		Email:      input.Email,
		Photo:      input.Photo,
		Department: domain.Department(input.Department),
		Role:       domain.Role(input.Role),
	}
	if err := s.validator.Validate(user); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("department", string(created.Department)).Msg("user created")
	return created, nil
}

// List returns every stored user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Get returns a single user, consulting the cache first when one is configured.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed, falling back to store")
		case found:
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}

// Update merges input into the stored user and revalidates the result. A
// missing user is reported before any field is validated.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := domain.UserPatch{
		Username:   input.Username,
		Email:      input.Email,
		Photo:      input.Photo,
		Department: input.Department,
		Role:       input.Role,
	}.Apply(*current)

	if err := s.validator.Validate(&merged); err != nil {
		return nil, err
	}

	if err := s.invalidate(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.repo.Replace(ctx, &merged)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes a user and returns the removed document.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	if err := s.invalidate(ctx, id); err != nil {
		return nil, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return deleted, nil
}

// invalidate drops the cached copy of id. Writes call it on both sides of
// the store write and fail when it fails.
func (s *UserService) invalidate(ctx context.Context, id string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
		return domain.NewInternalError("invalidate user cache", err)
	}
	return nil
}
