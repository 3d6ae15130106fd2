package payslip

import (
	"errors"
	"strings"

	paysliperrors "github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// mapRepositoryError classifies storage failures into the payslip error
// taxonomy. Unknown failures become ErrStorage with the cause attached.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return paysliperrors.ErrDuplicatePayslip.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return paysliperrors.ErrDuplicatePayslip.WithCause(err)
		case pgCheckViolation:
			return paysliperrors.ErrConstraintViolation.WithCause(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueIdentityIndex):
		return paysliperrors.ErrDuplicatePayslip.WithCause(err)
	case strings.Contains(errMsg, "unique constraint failed: payslips.employee_id"):
		return paysliperrors.ErrDuplicatePayslip.WithCause(err)
	case strings.Contains(errMsg, "check constraint failed"), strings.Contains(errMsg, "violates check constraint"):
		return paysliperrors.ErrConstraintViolation.WithCause(err)
	}

	return paysliperrors.ErrStorage.WithCause(err)
}
