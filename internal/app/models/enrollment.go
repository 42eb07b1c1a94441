package models

// EnrollInput is the validated input for enrolling a user in a course.
type EnrollInput struct {
	UserID   int64 `json:"userId" validate:"required,gt=0" example:"1"`
	CourseID int64 `json:"courseId" validate:"required,gt=0" example:"1"`
}
