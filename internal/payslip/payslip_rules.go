package payslip

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Patterns are shared verbatim by the Go validators and the postgres check
// constraints (POSIX ARE accepts the same syntax).
const (
	employeeIDPattern  = `^ATS0[0-9]{3}$`
	reservedEmployeeID = "ATS0000"
	panPattern         = `^[A-Z]{5}[0-9]{4}[A-Z]$`
	namePattern        = `^[A-Za-z]+( [A-Za-z]+)*$`
	bankAccountPattern = `^[0-9]{9,16}$`
	periodPattern      = `^[0-9]{4}-(0[1-9]|1[0-2])$`

	nameMinLen     = 5
	nameMaxLen     = 30
	nameMinLetters = 5
	maxDayCount    = 31
)

var (
	employeeIDRe  = regexp.MustCompile(employeeIDPattern)
	panRe         = regexp.MustCompile(panPattern)
	nameRe        = regexp.MustCompile(namePattern)
	bankAccountRe = regexp.MustCompile(bankAccountPattern)
	periodRe      = regexp.MustCompile(periodPattern)

	earliestJoiningDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	employeeTypes = []string{EmployeeTypePermanent, EmployeeTypeContract, EmployeeTypeTemporary}
)

// ValidEmployeeID accepts ATS0001..ATS0999.
func ValidEmployeeID(s string) bool {
	return employeeIDRe.MatchString(s) && s != reservedEmployeeID
}

func ValidPAN(s string) bool {
	return panRe.MatchString(s)
}

// ValidAlphabeticName accepts 5-30 characters of single-space separated
// letter runs holding at least 5 letters in total.
func ValidAlphabeticName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < nameMinLen || len(s) > nameMaxLen {
		return false
	}
	if !nameRe.MatchString(s) {
		return false
	}
	return len(s)-strings.Count(s, " ") >= nameMinLetters
}

func ValidBankAccount(s string) bool {
	return bankAccountRe.MatchString(strings.TrimSpace(s))
}

func ValidPeriodKey(s string) bool {
	return periodRe.MatchString(s)
}

func ValidEmployeeType(s string) bool {
	for _, t := range employeeTypes {
		if s == t {
			return true
		}
	}
	return false
}

func ValidDayCount(n int) bool {
	return n >= 0 && n <= maxDayCount
}

// ValidJoiningDate accepts dates from 1990-01-01 up to and including today.
func ValidJoiningDate(d, today time.Time) bool {
	day := truncateDate(d)
	return !day.Before(earliestJoiningDate) && !day.After(truncateDate(today))
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FieldRule is one row of the canonical rule table. Valid drives request
// validation and Check is the matching storage check constraint.
type FieldRule struct {
	Field   string
	Column  string
	Message string
	Check   string
	Valid   func(p *Payslip, today time.Time) bool
}

// ConstraintName is the check constraint name used in the schema.
func (r FieldRule) ConstraintName() string {
	return "chk_payslips_" + r.Column
}

var fieldRules = []FieldRule{
	{
		Field:   "employeeId",
		Column:  "employee_id",
		Message: "invalid employee id, expected ATS0 followed by 3 digits (not 000)",
		Check:   fmt.Sprintf("employee_id ~ '%s' AND employee_id <> '%s'", employeeIDPattern, reservedEmployeeID),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidEmployeeID(p.EmployeeID) },
	},
	nameRule("employeeName", "employee_name", "employee name", func(p *Payslip) string { return p.EmployeeName }),
	nameRule("designation", "designation", "designation", func(p *Payslip) string { return p.Designation }),
	{
		Field:   "dateJoining",
		Column:  "date_joining",
		Message: "invalid date of joining, expected a date between 1990-01-01 and today",
		Check:   "date_joining BETWEEN DATE '1990-01-01' AND CURRENT_DATE",
		Valid:   func(p *Payslip, today time.Time) bool { return ValidJoiningDate(p.DateJoining, today) },
	},
	{
		Field:   "monthYear",
		Column:  "month_year",
		Message: "invalid month, expected YYYY-MM",
		Check:   fmt.Sprintf("month_year ~ '%s'", periodPattern),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidPeriodKey(p.MonthYear) },
	},
	{
		Field:   "employeeType",
		Column:  "employee_type",
		Message: "invalid employee type, expected Permanent, Contract or Temporary",
		Check:   fmt.Sprintf("employee_type IN ('%s')", strings.Join(employeeTypes, "', '")),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidEmployeeType(p.EmployeeType) },
	},
	nameRule("location", "location", "location", func(p *Payslip) string { return p.Location }),
	nameRule("bankName", "bank_name", "bank name", func(p *Payslip) string { return p.BankName }),
	{
		Field:   "accountNo",
		Column:  "account_no",
		Message: "invalid account number, expected 9 to 16 digits",
		Check:   fmt.Sprintf("account_no ~ '%s'", bankAccountPattern),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidBankAccount(p.AccountNo) },
	},
	dayCountRule("workingDays", "working_days", "working days", func(p *Payslip) int { return p.WorkingDays }),
	dayCountRule("lop", "lop", "loss of pay days", func(p *Payslip) int { return p.LOP }),
	{
		Field:   "pan",
		Column:  "pan",
		Message: "invalid PAN, expected 5 uppercase letters, 4 digits and 1 uppercase letter",
		Check:   fmt.Sprintf("pan ~ '%s'", panPattern),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidPAN(p.PAN) },
	},
	{
		Field:   "earnings",
		Column:  "earnings",
		Message: "at least one earnings component is required",
		Check:   "CASE WHEN jsonb_typeof(earnings) = 'array' THEN jsonb_array_length(earnings) > 0 ELSE false END",
		Valid:   func(p *Payslip, _ time.Time) bool { return len(p.Earnings.Data()) > 0 },
	},
	{
		Field:   "deductions",
		Column:  "deductions",
		Message: "deductions must be a list",
		Check:   "jsonb_typeof(deductions) = 'array'",
		Valid:   func(p *Payslip, _ time.Time) bool { return true },
	},
	amountRule("grossPay", "gross_pay", "gross pay", func(p *Payslip) bool { return !p.GrossPay.IsNegative() }),
	amountRule("totalDeductions", "total_deductions", "total deductions", func(p *Payslip) bool { return !p.TotalDeductions.IsNegative() }),
	amountRule("netPay", "net_pay", "net pay", func(p *Payslip) bool { return !p.NetPay.IsNegative() }),
}

func nameRule(field, column, label string, get func(*Payslip) string) FieldRule {
	return FieldRule{
		Field:   field,
		Column:  column,
		Message: fmt.Sprintf("invalid %s, expected %d-%d letters separated by single spaces", label, nameMinLen, nameMaxLen),
		Check: fmt.Sprintf(
			"char_length(%[1]s) BETWEEN %[2]d AND %[3]d AND %[1]s ~ '%[4]s' AND char_length(regexp_replace(%[1]s, '[^A-Za-z]', '', 'g')) >= %[5]d",
			column, nameMinLen, nameMaxLen, namePattern, nameMinLetters,
		),
		Valid: func(p *Payslip, _ time.Time) bool { return ValidAlphabeticName(get(p)) },
	}
}

func dayCountRule(field, column, label string, get func(*Payslip) int) FieldRule {
	return FieldRule{
		Field:   field,
		Column:  column,
		Message: fmt.Sprintf("invalid %s, expected a number between 0 and %d", label, maxDayCount),
		Check:   fmt.Sprintf("%s BETWEEN 0 AND %d", column, maxDayCount),
		Valid:   func(p *Payslip, _ time.Time) bool { return ValidDayCount(get(p)) },
	}
}

func amountRule(field, column, label string, valid func(*Payslip) bool) FieldRule {
	return FieldRule{
		Field:   field,
		Column:  column,
		Message: fmt.Sprintf("invalid %s, must not be negative", label),
		Check:   column + " >= 0",
		Valid:   func(p *Payslip, _ time.Time) bool { return valid(p) },
	}
}

// FieldRules returns a copy of the canonical rule table in validation order.
func FieldRules() []FieldRule {
	out := make([]FieldRule, len(fieldRules))
	copy(out, fieldRules)
	return out
}
