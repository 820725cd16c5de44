package employeeerrors

import (
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusBadRequest,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin, departmenthead or employee",
		http.StatusBadRequest,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound,
		"No employee profile for this account",
		http.StatusNotFound,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Account is not assigned to a department",
		http.StatusBadRequest,
	)
	ErrPhotoRequired = apperror.RequiredField("Photo")
)
