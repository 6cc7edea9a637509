package service

import (
	"context"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/rs/zerolog"
)

type userService struct {
	users  repository.UserRepo
	rev    *Revision
	logger zerolog.Logger
}

// NewUserService creates the user administration service.
func NewUserService(users repository.UserRepo, rev *Revision, logger zerolog.Logger) UserService {
	return &userService{users: users, rev: rev, logger: logger}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Get resolves a user by name without creating one; unknown names surface
// repository.ErrNotFound.
func (s *userService) Get(ctx context.Context, name string) (*domain.User, error) {
	return s.users.GetByName(ctx, name)
}

// Remove deletes a user by name; sessions, adjustments, and logs cascade.
func (s *userService) Remove(ctx context.Context, name string) error {
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.rev.Bump()
	s.logger.Info().Str("user", name).Str("user_id", u.ID).Msg("user removed")
	return nil
}
