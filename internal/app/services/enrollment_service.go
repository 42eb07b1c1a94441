package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/app/repositories"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
	"github.com/yigit/schoolreg/internal/pkg/validation"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, input models.EnrollInput) (*models.User, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	userStore       repositories.UserStore
	courseStore     repositories.CourseStore
	enrollmentStore repositories.EnrollmentStore
	validator       *validation.Validator
	logger          zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	userStore repositories.UserStore,
	courseStore repositories.CourseStore,
	enrollmentStore repositories.EnrollmentStore,
	validator *validation.Validator,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
		validator:       validator,
		logger:          logger,
	}
}

// Enroll pairs a user with a course and returns the user with all its courses.
// Both endpoints are checked before anything is written; enrolling twice is a no-op.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, input models.EnrollInput) (*models.User, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userStore.FindUserByID(ctx, input.UserID)
	if err != nil {
		return nil, storageError("load user", err)
	}
	if user == nil {
		return nil, apperrors.UserNotFound(input.UserID)
	}

	course, err := s.courseStore.FindCourseByID(ctx, input.CourseID)
	if err != nil {
		return nil, storageError("load course", err)
	}
	if course == nil {
		return nil, apperrors.CourseNotFound(input.CourseID)
	}

	// A concurrent delete of either side is rejected by the foreign keys.
	if err := s.enrollmentStore.AddEnrollment(ctx, user.ID, course.ID); err != nil {
		return nil, storageError("enroll user", err)
	}

	courses, err := s.enrollmentStore.ListCoursesByUser(ctx, user.ID)
	if err != nil {
		return nil, storageError("load user courses", err)
	}
	user.Courses = courses

	s.logger.Info().Int64("userID", user.ID).Int64("courseID", course.ID).Msg("User enrolled")
	return user, nil
}
