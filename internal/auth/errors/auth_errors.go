package autherrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrIdentityNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Account no longer exists",
		http.StatusUnauthorized,
	)
	ErrInactiveAccount = apperror.New(
		apperror.CodeUnauthorized,
		"Account is disabled",
		http.StatusUnauthorized,
	)
	ErrUnknownRole = apperror.New(
		apperror.CodeUnauthorized,
		"Account role is not recognized",
		http.StatusUnauthorized,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusBadRequest,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)
)
