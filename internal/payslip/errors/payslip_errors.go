package paysliperrors

import (
	"errors"
	"net/http"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrDuplicatePayslip = apperror.New(
		apperror.CodeConflict,
		"payslip already exists for this employee and month",
		http.StatusBadRequest,
	)
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip id",
		http.StatusBadRequest,
	)
	ErrMissingIdentity = apperror.New(
		apperror.CodeInvalidInput,
		"employeeId, month and year are required",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id, expected ATS0 followed by 3 digits (not 000)",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month or year",
		http.StatusBadRequest,
	)
	ErrEmptyEarnings = apperror.New(
		apperror.CodeInvalidInput,
		"at least one earnings component is required",
		http.StatusBadRequest,
	)
	// ErrConstraintViolation means storage rejected data the application had
	// already accepted; the rule table and the schema disagree.
	ErrConstraintViolation = apperror.New(
		apperror.CodeInternalError,
		"payslip violates a storage constraint",
		http.StatusInternalServerError,
	)
	ErrStorage = apperror.New(
		apperror.CodeInternalError,
		"payslip storage failure",
		http.StatusInternalServerError,
	)
)

// Invalid builds a field-specific validation failure.
func Invalid(message string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidInput, message, http.StatusBadRequest)
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidInput
}
