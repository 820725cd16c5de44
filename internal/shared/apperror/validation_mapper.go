package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation is one failed rule, reported in the error details.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// formatFieldName turns "start_date" into "Start Date".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError names the first failing field in the message and
// lists every violation in Details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", StatusFor(CodeInvalidInput))
	}

	violations := make([]FieldViolation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}

	field := formatFieldName(errs[0].Field())
	var mapped *AppError
	if errs[0].Tag() == "required" {
		mapped = RequiredField(field)
	} else {
		mapped = InvalidField(field)
	}
	return mapped.WithDetails(violations)
}
