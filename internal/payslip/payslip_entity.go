package payslip

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	EmployeeTypePermanent = "Permanent"
	EmployeeTypeContract  = "Contract"
	EmployeeTypeTemporary = "Temporary"
)

// uniqueIdentityIndex guards one payslip per employee per period.
const uniqueIdentityIndex = "uq_payslip_employee_period"

// LineItem is one named amount of the earnings or deductions collection.
type LineItem struct {
	Component string          `json:"component"`
	Amount    decimal.Decimal `json:"amount"`
}

type Payslip struct {
	ID           uint      `gorm:"primaryKey"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(7);not null;uniqueIndex:uq_payslip_employee_period,priority:1"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(30);not null"`
	Designation  string    `gorm:"column:designation;type:varchar(30);not null"`
	DateJoining  time.Time `gorm:"column:date_joining;type:date;not null"`
	MonthYear    string    `gorm:"column:month_year;type:varchar(7);not null;uniqueIndex:uq_payslip_employee_period,priority:2"`
	EmployeeType string    `gorm:"column:employee_type;type:varchar(20);not null"`
	Location     string    `gorm:"column:location;type:varchar(30);not null"`
	BankName     string    `gorm:"column:bank_name;type:varchar(30);not null"`
	AccountNo    string    `gorm:"column:account_no;type:varchar(16);not null"`
	WorkingDays  int       `gorm:"column:working_days;not null"`
	LOP          int       `gorm:"column:lop;not null;default:0"`
	PAN          string    `gorm:"column:pan;type:varchar(10);not null"`

	// Line items are stored verbatim as JSON arrays.
	Earnings   datatypes.JSONType[[]LineItem] `gorm:"column:earnings;not null"`
	Deductions datatypes.JSONType[[]LineItem] `gorm:"column:deductions;not null"`

	// Totals are supplied by the caller and stored as-is.
	GrossPay        decimal.Decimal `gorm:"column:gross_pay;type:numeric(12,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"column:total_deductions;type:numeric(12,2);not null"`
	NetPay          decimal.Decimal `gorm:"column:net_pay;type:numeric(12,2);not null"`

	ProvidentFund *string `gorm:"column:provident_fund;type:varchar(50)"`
	UAN           *string `gorm:"column:uan;type:varchar(50)"`
	ESIC          *string `gorm:"column:esic;type:varchar(50)"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

func (Payslip) TableName() string {
	return "payslips"
}

// PayslipSummary is the list projection of a Payslip.
type PayslipSummary struct {
	ID           uint
	EmployeeID   string
	EmployeeName string
	MonthYear    string
	NetPay       decimal.Decimal
	CreatedAt    time.Time
}
