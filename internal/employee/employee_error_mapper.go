package employee

import (
	"errors"

	employeeerrors "github.com/MuleAlemuB/project1-sub002/internal/employee/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if apperror.IsUniqueViolation(err, "uq_employee_number") {
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	}
	if apperror.IsUniqueViolation(err, "uq_employee_email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
