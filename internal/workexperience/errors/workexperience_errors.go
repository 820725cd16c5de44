package workexperienceerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid work experience request id",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrLetterRequired  = apperror.RequiredField("Letter")
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"work experience request not found",
		http.StatusNotFound,
	)
	ErrLetterNotAvailable = apperror.New(
		apperror.CodeNotFound,
		"letter has not been issued yet",
		http.StatusNotFound,
	)
	ErrRequestAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"work experience request has already been decided",
		http.StatusBadRequest,
	)
	ErrRequestNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"letter can only be issued for an approved request",
		http.StatusBadRequest,
	)
	ErrNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to access this work experience request",
		http.StatusForbidden,
	)
)
