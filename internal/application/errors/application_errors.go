package applicationerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrInvalidApplicationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid application id",
		http.StatusBadRequest,
	)
	ErrInvalidVacancyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacancy id",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrResumeRequired  = apperror.RequiredField("Resume")
	ErrVacancyNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacancy not found",
		http.StatusNotFound,
	)
	ErrVacancyClosed = apperror.New(
		apperror.CodeInvalidState,
		"vacancy is no longer accepting applications",
		http.StatusBadRequest,
	)
	ErrAlreadyApplied = apperror.New(
		apperror.CodeConflict,
		"an application with this email already exists for the vacancy",
		http.StatusBadRequest,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrApplicationAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"application has already been decided",
		http.StatusBadRequest,
	)
)
