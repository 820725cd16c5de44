package departmenterrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"department name already exists",
		http.StatusBadRequest,
	)
	ErrDepartmentHasEmployees = apperror.New(
		apperror.CodeInvalidState,
		"department still has employees",
		http.StatusBadRequest,
	)
)
