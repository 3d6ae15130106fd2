package payslip_test

import (
	"bytes"
	"testing"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslipPDF(t *testing.T) {
	detail := payslip.PayslipDetailResponse{
		PayslipResponse: payslip.PayslipResponse{
			EmployeeID:   "ATS0123",
			EmployeeName: "Priya Sharma",
			MonthYear:    "2024-01",
			Earnings:     []payslip.LineItem{{Component: "Basic Pay", Amount: decimal.NewFromInt(30000)}},
			Deductions:   []payslip.LineItem{{Component: "Income (Tax)", Amount: decimal.NewFromInt(1500)}},
			GrossPay:     decimal.NewFromInt(30000),
			NetPay:       decimal.NewFromInt(28500),
			WorkingDays:  30,
			LOP:          2,
		},
		PeriodLabel:  "January 2024",
		DaysInPeriod: 31,
		LOPDeduction: 2000,
	}

	doc, err := payslip.RenderPayslipPDF(detail)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(doc, []byte("%%EOF")))
	assert.Contains(t, string(doc), "(Payslip for January 2024) Tj")
	assert.Contains(t, string(doc), "Basic Pay: 30000.00")
	assert.Contains(t, string(doc), `Income \(Tax\): 1500.00`)
	assert.Contains(t, string(doc), "LOP Deduction: 2000.00")
	assert.Contains(t, string(doc), "Net Pay: 28500.00")
}
