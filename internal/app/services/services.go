package services

import (
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
)

// Services defined in this package:
// - UserService: user registry (create, list, delete)
// - CourseService: course registry (create, list, students, delete)
// - EnrollmentService: pairs users with courses

// storageError hides a store failure behind a generic storage category.
func storageError(action string, err error) error {
	return apperrors.NewStorageError("Failed to "+action, err)
}
