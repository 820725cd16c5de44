package requisitionerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrInvalidRequisitionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requisition id",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"requisitions can only be raised by a head with a department",
		http.StatusBadRequest,
	)
	ErrRequisitionNotFound = apperror.New(
		apperror.CodeNotFound,
		"requisition not found",
		http.StatusNotFound,
	)
	ErrRequisitionAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"requisition has already been decided",
		http.StatusBadRequest,
	)
	ErrRequisitionNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending requisitions can be withdrawn",
		http.StatusBadRequest,
	)
	ErrNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to access this requisition",
		http.StatusForbidden,
	)
)
