package vacancyerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrInvalidVacancyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacancy id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDeadline = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deadline, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrVacancyNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacancy not found",
		http.StatusNotFound,
	)
)
