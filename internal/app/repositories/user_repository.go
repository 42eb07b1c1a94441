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

var userColumns = []string{"u.id", "u.name", "u.email", "u.created_at"}

// UserRepository handles user database operations
type UserRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

// CreateUser inserts a user and fills in its ID and CreatedAt
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	createdAt := helpers.NowUTC()

	query, args, err := r.sb.Insert("users").
		Columns("name", "email", "created_at").
		Values(user.Name, user.Email, createdAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("user email %q: %w", user.Email, ErrDuplicateKey)
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// FindUserByID retrieves a user by ID. It returns (nil, nil) if no user matches.
func (r *UserRepository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users u").
		Where(squirrel.Eq{"u.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find user SQL")
		return nil, fmt.Errorf("failed to build find user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}

	return user, nil
}

// DeleteUser snapshots the user's courses and deletes the user in one
// transaction. Enrollments go with it through ON DELETE CASCADE.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) ([]models.Course, error) {
	courses := []models.Course{}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		courses, err = listCoursesOfUser(ctx, r.sb, tx, id)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Delete("users").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete user query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading deleted user count: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Int64("userID", id).Msg("Error deleting user")
		}
		return nil, err
	}

	return courses, nil
}

// ListUsersWithCourses returns every user with its enrolled courses
func (r *UserRepository) ListUsersWithCourses(ctx context.Context) ([]models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users u").
		OrderBy("u.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	users, err := scanUsers(ctx, r.db, query, args)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}

	coursesByUser, err := r.coursesByUser(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		courses := coursesByUser[users[i].ID]
		if courses == nil {
			courses = []models.Course{}
		}
		users[i].Courses = courses
	}

	return users, nil
}

// coursesByUser loads the whole association in one query, keyed by user ID.
func (r *UserRepository) coursesByUser(ctx context.Context) (map[int64][]models.Course, error) {
	query, args, err := r.sb.Select(append([]string{"e.user_id"}, courseColumns...)...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		OrderBy("e.user_id ASC", "c.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building user courses SQL")
		return nil, fmt.Errorf("failed to build user courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing user courses query")
		return nil, fmt.Errorf("error querying user courses: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.Course)
	for rows.Next() {
		var (
			userID      int64
			course      models.Course
			description sql.NullString
		)
		if err := rows.Scan(&userID, &course.ID, &course.Title, &course.Code, &description); err != nil {
			return nil, fmt.Errorf("error scanning user course row: %w", err)
		}
		course.Description = helpers.StringPtr(description)
		result[userID] = append(result[userID], course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user course rows: %w", err)
	}

	return result, nil
}

// listCoursesOfUser returns the courses userID is enrolled in, ordered by id.
func listCoursesOfUser(ctx context.Context, sb squirrel.StatementBuilderType, q queryer, userID int64) ([]models.Course, error) {
	query, args, err := sb.Select(courseColumns...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user courses query: %w", err)
	}

	return scanCourses(ctx, q, query, args)
}

// scanUsers runs query and scans rows selected with userColumns.
func scanUsers(ctx context.Context, q queryer, query string, args []interface{}) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
