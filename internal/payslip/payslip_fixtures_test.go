package payslip_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func validRequest() payslip.CreatePayslipRequest {
	return payslip.CreatePayslipRequest{
		EmployeeID:   "ATS0123",
		EmployeeName: "Priya Sharma",
		Designation:  "Software Engineer",
		DateJoining:  "2020-06-01",
		MonthYear:    "2024-01",
		EmployeeType: payslip.EmployeeTypePermanent,
		Location:     "Hyderabad",
		BankName:     "State Bank",
		AccountNo:    "123456789012",
		WorkingDays:  intPtr(30),
		LOP:          intPtr(2),
		PAN:          "ABCDE1234F",
		Earnings: []payslip.LineItemInput{
			{Component: "Basic Pay", Amount: dec("20000")},
			{Component: "House Rent", Amount: dec("10000")},
		},
		Deductions: []payslip.LineItemInput{
			{Component: "Income Tax", Amount: dec("1500")},
		},
		GrossPay:        dec("30000"),
		TotalDeductions: dec("1500"),
		NetPay:          dec("28500"),
		ProvidentFund:   strPtr("PF12345"),
	}
}

func requestFor(employeeID, monthYear string) payslip.CreatePayslipRequest {
	req := validRequest()
	req.EmployeeID = employeeID
	req.MonthYear = monthYear
	return req
}

// newSQLiteDB opens an isolated in-memory database with the payslip schema.
// A single connection serialises statements the way one sqlite file would.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, payslip.EnsureSchema(context.Background(), db))
	return db
}
