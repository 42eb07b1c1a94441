package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/db"
	"github.com/yigit/schoolreg/internal/pkg/dberrors"
	"github.com/yigit/schoolreg/internal/pkg/logger"
)

// EnrollmentRepository handles the enrollments join table
type EnrollmentRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(database *db.Database) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

// AddEnrollment pairs a user with a course. An existing pair is left as is.
func (r *EnrollmentRepository) AddEnrollment(ctx context.Context, userID, courseID int64) error {
	query, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id").
		Values(userID, courseID).
		Suffix("ON CONFLICT (user_id, course_id) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add enrollment SQL")
		return fmt.Errorf("failed to build add enrollment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			logger.Warn().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Enrollment endpoint vanished")
			return fmt.Errorf("enroll user %d in course %d: %w", userID, courseID, ErrForeignKeyViolation)
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error executing add enrollment query")
		return fmt.Errorf("error adding enrollment: %w", err)
	}

	return nil
}

// ListCoursesByUser returns the courses a user is enrolled in
func (r *EnrollmentRepository) ListCoursesByUser(ctx context.Context, userID int64) ([]models.Course, error) {
	courses, err := listCoursesOfUser(ctx, r.sb, r.db, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing user courses")
		return nil, err
	}

	return courses, nil
}
