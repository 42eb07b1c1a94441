package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/db"
	"github.com/yigit/schoolreg/internal/pkg/dberrors"
	"github.com/yigit/schoolreg/internal/pkg/helpers"
	"github.com/yigit/schoolreg/internal/pkg/logger"
)

var courseColumns = []string{"c.id", "c.title", "c.code", "c.description"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.Database) *CourseRepository {
	return &CourseRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

// CreateCourse inserts a course and fills in its ID
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query, args, err := r.sb.Insert("courses").
		Columns("title", "code", "description").
		Values(course.Title, course.Code, helpers.GetNullString(course.Description)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&course.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("course code %q: %w", course.Code, ErrDuplicateKey)
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// FindCourseByID retrieves a course by ID. It returns (nil, nil) if no course matches.
func (r *CourseRepository) FindCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find course SQL")
		return nil, fmt.Errorf("failed to build find course query: %w", err)
	}

	course := &models.Course{}
	var description sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&course.ID, &course.Title, &course.Code, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	course.Description = helpers.StringPtr(description)

	return course, nil
}

// ListStudentsByCourse returns the users enrolled in a course
func (r *CourseRepository) ListStudentsByCourse(ctx context.Context, courseID int64) ([]models.User, error) {
	students, err := r.listStudents(ctx, r.db, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error listing course students")
		return nil, err
	}
	return students, nil
}

// DeleteCourse snapshots the enrolled students and deletes the course in one
// transaction. Enrollments go with it through ON DELETE CASCADE.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) ([]models.User, error) {
	students := []models.User{}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		students, err = r.listStudents(ctx, tx, id)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Delete("courses").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete course query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading deleted course count: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		}
		return nil, err
	}

	return students, nil
}

// ListCoursesWithUsers returns every course with its enrolled students
func (r *CourseRepository) ListCoursesWithUsers(ctx context.Context) ([]models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	courses, err := scanCourses(ctx, r.db, query, args)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, err
	}

	studentsByCourse, err := r.studentsByCourse(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		students := studentsByCourse[courses[i].ID]
		if students == nil {
			students = []models.User{}
		}
		courses[i].Students = students
	}

	return courses, nil
}

func (r *CourseRepository) listStudents(ctx context.Context, q queryer, courseID int64) ([]models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("enrollments e").
		Join("users u ON u.id = e.user_id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("u.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course students query: %w", err)
	}

	return scanUsers(ctx, q, query, args)
}

// studentsByCourse loads the whole association in one query, keyed by course ID.
func (r *CourseRepository) studentsByCourse(ctx context.Context) (map[int64][]models.User, error) {
	query, args, err := r.sb.Select(append([]string{"e.course_id"}, userColumns...)...).
		From("enrollments e").
		Join("users u ON u.id = e.user_id").
		OrderBy("e.course_id ASC", "u.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course students SQL")
		return nil, fmt.Errorf("failed to build course students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course students query")
		return nil, fmt.Errorf("error querying course students: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.User)
	for rows.Next() {
		var (
			courseID int64
			user     models.User
		)
		if err := rows.Scan(&courseID, &user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course student row: %w", err)
		}
		result[courseID] = append(result[courseID], user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course student rows: %w", err)
	}

	return result, nil
}

// scanCourses runs query and scans rows selected with courseColumns.
func scanCourses(ctx context.Context, q queryer, query string, args []interface{}) ([]models.Course, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var (
			course      models.Course
			description sql.NullString
		)
		if err := rows.Scan(&course.ID, &course.Title, &course.Code, &description); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		course.Description = helpers.StringPtr(description)
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}
