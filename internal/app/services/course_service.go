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
	"github.com/yigit/schoolreg/internal/pkg/helpers"
	"github.com/yigit/schoolreg/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetStudentsInCourse(ctx context.Context, courseID int64) ([]models.User, error)
	DeleteCourse(ctx context.Context, courseID int64) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseStore repositories.CourseStore
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseStore repositories.CourseStore, validator *validation.Validator, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseStore: courseStore,
		validator:   validator,
		logger:      logger,
	}
}

// CreateCourse validates the input and stores a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, input models.CreateCourseInput) (*models.Course, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Code = strings.TrimSpace(input.Code)
	input.Description = helpers.TrimmedPtr(input.Description, strings.TrimSpace)

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:       input.Title,
		Code:        input.Code,
		Description: input.Description,
	}
	if err := s.courseStore.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("Course with code %s already exists", input.Code))
		}
		return nil, storageError("create course", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// ListCourses returns all courses with their enrolled students
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseStore.ListCoursesWithUsers(ctx)
	if err != nil {
		return nil, storageError("list courses", err)
	}
	return courses, nil
}

// GetStudentsInCourse returns the users enrolled in a course
func (s *courseServiceImpl) GetStudentsInCourse(ctx context.Context, courseID int64) ([]models.User, error) {
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	students, err := s.courseStore.ListStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, storageError("list course students", err)
	}
	return students, nil
}

// DeleteCourse removes a course and its enrollments. The returned course carries
// the students that were enrolled right before the delete.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students, err := s.courseStore.DeleteCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.CourseNotFound(courseID)
		}
		return nil, storageError("delete course", err)
	}
	course.Students = students

	s.logger.Info().Int64("courseID", courseID).Int("students", len(students)).Msg("Course deleted")
	return course, nil
}

func (s *courseServiceImpl) requireCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseStore.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, storageError("load course", err)
	}
	if course == nil {
		return nil, apperrors.CourseNotFound(courseID)
	}
	return course, nil
}
