package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type UserService struct {
	users    domain.UserRepository
	validate *validator.Validate
	logger   *zerolog.Logger
}

func NewUserService(users domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, validate: validator.New(), logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	user := &models.User{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := s.check(user); err != nil {
		return nil, err
	}

	err := s.users.CreateUser(ctx, user)
	if errors.Is(err, database.ErrEmailTaken) {
		return nil, emailTaken(user.Email)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return loadUser(ctx, s.users, id)
}

// UpdateUser applies the set fields of patch; the email must stay unique.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := loadUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(user)
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if err := s.check(user); err != nil {
		return nil, err
	}

	err = s.users.UpdateUser(ctx, user)
	switch {
	case errors.Is(err, database.ErrEmailTaken):
		return nil, emailTaken(user.Email)
	case errors.Is(err, database.ErrNotFound):
		return nil, userNotFound(id)
	case err != nil:
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// DeleteUser is idempotent: deleting an absent user succeeds.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.users.DeleteUser(ctx, id)
	if errors.Is(err, database.ErrUserReferenced) {
		return models.NewConflict("User has items, bookings or comments")
	}
	if err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) check(user *models.User) error {
	if user.Name == "" {
		return models.NewInvalidRequest("User name must not be blank")
	}
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return models.NewInvalidRequest("Invalid email: " + user.Email)
	}
	return nil
}

func emailTaken(email string) error {
	return models.NewConflict("Email already registered: " + email)
}
