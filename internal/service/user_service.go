package service

import (
	"context"
	"fmt"

	"github.com/LuckyFay12/shareit/internal/domain"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/rs/zerolog"
)

// UserService owns user identity: lookups, creation with email uniqueness,
// partial updates and deletion.
type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.validateEmailFree(ctx, user.Email, 0); err != nil {
		return nil, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		if err := s.validateEmailFree(ctx, *patch.Email, id); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// validateEmailFree scans the full user set for an exact, case-sensitive
// match. Linear on purpose: uniqueness is owned here, not by the store.
func (s *UserService) validateEmailFree(ctx context.Context, email string, selfID int64) error {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == email && u.ID != selfID {
			return fmt.Errorf("%w: %s", ErrEmailExists, email)
		}
	}
	return nil
}
