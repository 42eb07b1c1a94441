package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/yigit/schoolreg/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Course code pattern, e.g. CS101 or MATH-201
	CourseCodePattern = `^[A-Za-z0-9][A-Za-z0-9_-]*$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// Validator validates input structs tagged with `validate:"..."` and turns
// failures into apperrors validation errors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the project's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.CourseCode.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct validates s. The returned error, if any, wraps apperrors.ErrValidationFailed.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("Invalid request", nil)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = FormatFieldError(fe)
	}
	return apperrors.NewValidationError("Validation failed", details)
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "notblank":
		return e.Field() + " must not be blank"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "coursecode":
		return e.Field() + " must contain only letters, digits, '-' or '_'"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
