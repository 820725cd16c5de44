package leaveerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidTargetRole = apperror.New(
		apperror.CodeInvalidInput,
		"target_role must be departmenthead or admin",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"a department is required to address a department head",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"leave has already been decided",
		http.StatusBadRequest,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending leaves can be withdrawn",
		http.StatusBadRequest,
	)
	ErrNotAllowedToDecide = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to decide this leave",
		http.StatusForbidden,
	)
	ErrNotAllowedToView = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to access this leave",
		http.StatusForbidden,
	)
)
