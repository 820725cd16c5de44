package attendanceerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"already clocked in for today",
		http.StatusBadRequest,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"clock in not found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"already clocked out for today",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
)
