package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolreg/internal/app/migrations"
	appRepos "github.com/yigit/schoolreg/internal/app/repositories"
	appServices "github.com/yigit/schoolreg/internal/app/services"
	"github.com/yigit/schoolreg/internal/db"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
	"github.com/yigit/schoolreg/internal/pkg/validation"
)

type testServices struct {
	database *db.Database
	users    appServices.UserService
	courses  appServices.CourseService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	database, err := db.NewInMemory()
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(database.Close)

	if err := migrations.NewMigrator(database.SQL, database.Dialect, zerolog.Nop()).Up(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repos := appRepos.NewRepositories(database)
	v := validation.New()
	return &testServices{
		database: database,
		users:    appServices.NewUserService(repos.UserRepository, v, zerolog.Nop()),
		courses:  appServices.NewCourseService(repos.CourseRepository, v, zerolog.Nop()),
	}
}

func TestCreateDefaultDataIsRepeatable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServices(t)

	for run := 1; run <= 2; run++ {
		if err := CreateDefaultData(ctx, ts.users, ts.courses, zerolog.Nop()); err != nil {
			t.Fatalf("CreateDefaultData() run %d error = %v", run, err)
		}
	}

	courses, err := ts.courses.ListCourses(ctx)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if len(courses) != len(defaultCourses) {
		t.Errorf("courses = %d, want %d", len(courses), len(defaultCourses))
	}

	users, err := ts.users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != len(defaultUsers) {
		t.Errorf("users = %d, want %d", len(users), len(defaultUsers))
	}
}

func TestCreateDefaultDataReportsStoreFailures(t *testing.T) {
	t.Parallel()
	ts := newTestServices(t)
	ts.database.Close()

	err := CreateDefaultData(context.Background(), ts.users, ts.courses, zerolog.Nop())
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("CreateDefaultData() error = %v, want storage error", err)
	}
}
