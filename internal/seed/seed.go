package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/schoolreg/internal/app/models"
	appServices "github.com/yigit/schoolreg/internal/app/services"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

var defaultCourses = []appModels.CreateCourseInput{
	{Title: "Intro to Computer Science", Code: "CS101", Description: strPtr("Programming fundamentals and problem solving")},
	{Title: "Data Structures", Code: "CS201", Description: strPtr("Lists, trees, graphs and their algorithms")},
	{Title: "Linear Algebra", Code: "MATH-201"},
}

var defaultUsers = []appModels.CreateUserInput{
	{Name: "Ada Lovelace", Email: "ada@example.com"},
	{Name: "Alan Turing", Email: "alan@example.com"},
}

// CreateDefaultData creates demo courses and users if they don't exist.
// Existing records are skipped, so running it on every start is safe.
func CreateDefaultData(ctx context.Context, users appServices.UserService, courses appServices.CourseService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Users)...")
	var finalErr error

	for _, input := range defaultCourses {
		_, err := courses.CreateCourse(ctx, input)
		switch {
		case err == nil:
			lgr.Info().Str("code", input.Code).Msg("Default course created")
		case errors.Is(err, apperrors.ErrConflict):
			lgr.Debug().Str("code", input.Code).Msg("Default course already exists")
		default:
			lgr.Error().Err(err).Str("code", input.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, input := range defaultUsers {
		_, err := users.CreateUser(ctx, input)
		switch {
		case err == nil:
			lgr.Info().Str("email", input.Email).Msg("Default user created")
		case errors.Is(err, apperrors.ErrConflict):
			lgr.Debug().Str("email", input.Email).Msg("Default user already exists")
		default:
			lgr.Error().Err(err).Str("email", input.Email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation complete.")
	}
	return finalErr
}
