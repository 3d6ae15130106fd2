package payslip

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// LOPDeduction is grossPay / workingDays * lop rounded to 2 places. It is
// advisory: stored totals are never checked against it.
func LOPDeduction(grossPay, workingDays, lop float64) float64 {
	if math.IsNaN(grossPay) || math.IsNaN(workingDays) || math.IsNaN(lop) {
		return 0
	}
	if math.IsInf(grossPay, 0) || math.IsInf(workingDays, 0) || math.IsInf(lop, 0) {
		return 0
	}
	if workingDays == 0 {
		return 0
	}

	perDay := decimal.NewFromFloat(grossPay).Div(decimal.NewFromFloat(workingDays))
	return perDay.Mul(decimal.NewFromFloat(lop)).Round(2).InexactFloat64()
}

// FormatPeriodLabel maps "2024-01" to "January 2024". Input must already be a
// valid period key; anything else yields "".
func FormatPeriodLabel(monthYear string) string {
	year, month, ok := parsePeriod(monthYear)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %04d", monthNames[month-1], year)
}

// DaysInPeriod counts the calendar days of a YYYY-MM period: day 0 of the
// following month is the last day of this one.
func DaysInPeriod(monthYear string) int {
	year, month, ok := parsePeriod(monthYear)
	if !ok {
		return 0
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodKey builds a YYYY-MM key, zero-padding the month.
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func parsePeriod(monthYear string) (year, month int, ok bool) {
	if !ValidPeriodKey(monthYear) {
		return 0, 0, false
	}
	year, err := strconv.Atoi(monthYear[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(monthYear[5:])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
