package notificationerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotificationForbidden = apperror.New(
		apperror.CodeForbidden,
		"notification is not addressed to you",
		http.StatusForbidden,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrRecipientRoleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"recipient role is required",
		http.StatusBadRequest,
	)
	ErrSourceNotFound = apperror.New(
		apperror.CodeNotFound,
		"referenced document not found",
		http.StatusNotFound,
	)
)
