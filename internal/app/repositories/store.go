package repositories

import (
	"context"
	"database/sql"

	"github.com/yigit/schoolreg/internal/app/models"
)

// UserStore is the persistence contract for users.
// Find methods return (nil, nil) when the user does not exist.
type UserStore interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// DeleteUser removes the user and its enrollments and returns the
	// courses the user was enrolled in immediately before the delete.
	DeleteUser(ctx context.Context, id int64) ([]models.Course, error)
	ListUsersWithCourses(ctx context.Context) ([]models.User, error)
}

// CourseStore is the persistence contract for courses.
type CourseStore interface {
	FindCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	// DeleteCourse removes the course and its enrollments and returns the
	// users that were enrolled immediately before the delete.
	DeleteCourse(ctx context.Context, id int64) ([]models.User, error)
	ListCoursesWithUsers(ctx context.Context) ([]models.Course, error)
	ListStudentsByCourse(ctx context.Context, courseID int64) ([]models.User, error)
}

// EnrollmentStore is the persistence contract for the user/course association.
type EnrollmentStore interface {
	// AddEnrollment is idempotent: an existing pair is left untouched.
	AddEnrollment(ctx context.Context, userID, courseID int64) error
	ListCoursesByUser(ctx context.Context, userID int64) ([]models.Course, error)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var (
	_ UserStore       = (*UserRepository)(nil)
	_ CourseStore     = (*CourseRepository)(nil)
	_ EnrollmentStore = (*EnrollmentRepository)(nil)
)
