package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/app/repositories"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
	"github.com/yigit/schoolreg/internal/pkg/validation"
)

// UserService defines the interface for user-related operations
type UserService interface {
	CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore repositories.UserStore
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userStore repositories.UserStore, validator *validation.Validator, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		validator: validator,
		logger:    logger,
	}
}

// CreateUser validates the input and stores a new user
func (s *userServiceImpl) CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user := &models.User{Name: input.Name, Email: input.Email}
	if err := s.userStore.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("User with email %s already exists", input.Email))
		}
		return nil, storageError("create user", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User created")
	return user, nil
}

// ListUsers returns all users with their courses
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userStore.ListUsersWithCourses(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}

// DeleteUser removes a user and its enrollments and returns the user as it was
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userStore.FindUserByID(ctx, id)
	if err != nil {
		return nil, storageError("load user", err)
	}
	if user == nil {
		return nil, apperrors.UserNotFound(id)
	}

	courses, err := s.userStore.DeleteUser(ctx, id)
	if err != nil {
		// Someone else deleted it between the lookup and the delete.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.UserNotFound(id)
		}
		return nil, storageError("delete user", err)
	}
	user.Courses = courses

	s.logger.Info().Int64("userID", id).Int("courses", len(courses)).Msg("User deleted")
	return user, nil
}
