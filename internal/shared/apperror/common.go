package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		CodeConflict,
		"Resource already exists",
		http.StatusBadRequest,
	)

	ErrInvalidState = New(
		CodeInvalidState,
		"Action is not allowed in the current state",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), StatusFor(CodeInvalidInput))
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), StatusFor(CodeInvalidInput))
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, StatusFor(CodeConflict))
}

func InvalidState(message string) *AppError {
	return New(CodeInvalidState, message, StatusFor(CodeInvalidState))
}
