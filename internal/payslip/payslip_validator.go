package payslip

import (
	"fmt"
	"strings"
	"time"

	paysliperrors "github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip/errors"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// buildPayslip validates req against the rule table and the line-item rules
// and returns the entity to persist. Validation is all-or-nothing.
func buildPayslip(req CreatePayslipRequest, today time.Time) (*Payslip, error) {
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.MonthYear) == "" {
		return nil, paysliperrors.Invalid("employeeId and monthYear are required")
	}

	dateJoining, err := time.Parse(dateLayout, strings.TrimSpace(req.DateJoining))
	if err != nil {
		return nil, paysliperrors.Invalid("invalid date of joining format, expected YYYY-MM-DD")
	}
	if req.WorkingDays == nil {
		return nil, paysliperrors.Invalid("workingDays is required")
	}
	if req.GrossPay == nil || req.TotalDeductions == nil || req.NetPay == nil {
		return nil, paysliperrors.Invalid("grossPay, totalDeductions and netPay are required")
	}

	earnings, err := toLineItems(collectionEarnings, req.Earnings)
	if err != nil {
		return nil, err
	}
	deductions, err := toLineItems(collectionDeductions, req.Deductions)
	if err != nil {
		return nil, err
	}

	lop := 0
	if req.LOP != nil {
		lop = *req.LOP
	}

	p := &Payslip{
		EmployeeID:      strings.TrimSpace(req.EmployeeID),
		EmployeeName:    strings.TrimSpace(req.EmployeeName),
		Designation:     strings.TrimSpace(req.Designation),
		DateJoining:     dateJoining,
		MonthYear:       strings.TrimSpace(req.MonthYear),
		EmployeeType:    strings.TrimSpace(req.EmployeeType),
		Location:        strings.TrimSpace(req.Location),
		BankName:        strings.TrimSpace(req.BankName),
		AccountNo:       strings.TrimSpace(req.AccountNo),
		WorkingDays:     *req.WorkingDays,
		LOP:             lop,
		PAN:             strings.TrimSpace(req.PAN),
		Earnings:        datatypes.NewJSONType(earnings),
		Deductions:      datatypes.NewJSONType(deductions),
		GrossPay:        req.GrossPay.Round(2),
		TotalDeductions: req.TotalDeductions.Round(2),
		NetPay:          req.NetPay.Round(2),
		ProvidentFund:   optionalString(req.ProvidentFund),
		UAN:             optionalString(req.UAN),
		ESIC:            optionalString(req.ESIC),
	}

	for _, rule := range fieldRules {
		if !rule.Valid(p, today) {
			return nil, paysliperrors.Invalid(rule.Message)
		}
	}

	if err := ValidateLineItems(earnings, deductions); err != nil {
		return nil, err
	}

	return p, nil
}

func toLineItems(collection string, in []LineItemInput) ([]LineItem, error) {
	items := make([]LineItem, 0, len(in))
	for _, item := range in {
		if item.Amount == nil {
			return nil, paysliperrors.Invalid(fmt.Sprintf("missing %s amount for %q", collection, item.Component))
		}
		items = append(items, LineItem{
			Component: strings.TrimSpace(item.Component),
			Amount:    item.Amount.Round(2),
		})
	}
	return items, nil
}

func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
