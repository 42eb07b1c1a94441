package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/yigit/schoolreg/internal/pkg/apperrors"
)

type sample struct {
	Name  string `json:"name" validate:"required,notblank,max=5"`
	Code  string `json:"code" validate:"required,coursecode"`
	Count int64  `json:"count" validate:"required,gt=0"`
}

func TestValidatorStruct(t *testing.T) {
	t.Parallel()
	v := New()

	if err := v.Struct(sample{Name: "ok", Code: "CS-101_a", Count: 1}); err != nil {
		t.Fatalf("Struct(valid) error = %v", err)
	}

	err := v.Struct(sample{Name: "toolong", Code: "-bad", Count: 0})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("Struct(invalid) error = %v, want validation failure", err)
	}

	details := apperrors.DetailsOf(err)
	want := map[string]string{
		"name":  "name must be at most 5",
		"code":  "code must contain only letters, digits, '-' or '_'",
		"count": "count is required",
	}
	for field, msg := range want {
		if details[field] != msg {
			t.Errorf("details[%s] = %v, want %q", field, details[field], msg)
		}
	}
}

func TestNotBlank(t *testing.T) {
	t.Parallel()

	err := New().Struct(sample{Name: "   ", Code: "A1", Count: 1})
	got, _ := apperrors.DetailsOf(err)["name"].(string)
	if !strings.Contains(got, "blank") {
		t.Fatalf("details[name] = %q, want blank message", got)
	}
}

func TestCourseCodePattern(t *testing.T) {
	t.Parallel()

	for code, want := range map[string]bool{
		"CS101":    true,
		"MATH-201": true,
		"bio_1":    true,
		"CS 101":   false,
		"-CS":      false,
		"":         false,
		"CS101!":   false,
	} {
		if got := CompiledPatterns.CourseCode.MatchString(code); got != want {
			t.Errorf("CourseCode.MatchString(%q) = %v, want %v", code, got, want)
		}
	}
}
