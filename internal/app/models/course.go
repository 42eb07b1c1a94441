package models

// Course represents a course users can enroll in.
type Course struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Title       string  `json:"title" db:"title" example:"Intro to CS"`
	Code        string  `json:"code" db:"code" example:"CS101"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable

	// Relations (nil and omitted from JSON unless loaded)
	Students []User `json:"students,omitzero"`
}

// CreateCourseInput is the validated input for creating a course.
type CreateCourseInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=200" example:"Intro to CS"`
	Code        string  `json:"code" validate:"required,max=20,coursecode" example:"CS101"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Programming fundamentals"`
}
