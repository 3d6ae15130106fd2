package payslip

import "github.com/shopspring/decimal"

type LineItemInput struct {
	Component string           `json:"component" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
}

type CreatePayslipRequest struct {
	EmployeeID      string           `json:"employeeId" binding:"required"`
	EmployeeName    string           `json:"employeeName" binding:"required"`
	Designation     string           `json:"designation" binding:"required"`
	DateJoining     string           `json:"dateJoining" binding:"required"`
	MonthYear       string           `json:"monthYear" binding:"required"`
	EmployeeType    string           `json:"employeeType" binding:"required"`
	Location        string           `json:"location" binding:"required"`
	BankName        string           `json:"bankName" binding:"required"`
	AccountNo       string           `json:"accountNo" binding:"required"`
	WorkingDays     *int             `json:"workingDays" binding:"required"`
	LOP             *int             `json:"lop"`
	PAN             string           `json:"pan" binding:"required"`
	Earnings        []LineItemInput  `json:"earnings" binding:"required,dive"`
	Deductions      []LineItemInput  `json:"deductions" binding:"omitempty,dive"`
	GrossPay        *decimal.Decimal `json:"grossPay" binding:"required"`
	TotalDeductions *decimal.Decimal `json:"totalDeductions" binding:"required"`
	NetPay          *decimal.Decimal `json:"netPay" binding:"required"`
	ProvidentFund   *string          `json:"providentFund"`
	UAN             *string          `json:"uan"`
	ESIC            *string          `json:"esic"`
}

type GetPayslipQuery struct {
	EmployeeID string `form:"employeeId"`
	Month      string `form:"month"`
	Year       string `form:"year"`
}

type CreatePayslipResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type PayslipResponse struct {
	ID              uint            `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	Designation     string          `json:"designation"`
	DateJoining     string          `json:"dateJoining"`
	MonthYear       string          `json:"monthYear"`
	EmployeeType    string          `json:"employeeType"`
	Location        string          `json:"location"`
	BankName        string          `json:"bankName"`
	AccountNo       string          `json:"accountNo"`
	WorkingDays     int             `json:"workingDays"`
	LOP             int             `json:"lop"`
	PAN             string          `json:"pan"`
	Earnings        []LineItem      `json:"earnings"`
	Deductions      []LineItem      `json:"deductions"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	ProvidentFund   *string         `json:"providentFund,omitempty"`
	UAN             *string         `json:"uan,omitempty"`
	ESIC            *string         `json:"esic,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

// PayslipDetailResponse is a stored payslip plus presentation-only values.
type PayslipDetailResponse struct {
	PayslipResponse
	PeriodLabel  string  `json:"periodLabel"`
	DaysInPeriod int     `json:"daysInPeriod"`
	LOPDeduction float64 `json:"lopDeduction"`
}

type PayslipSummaryResponse struct {
	ID           uint            `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	MonthYear    string          `json:"monthYear"`
	NetPay       decimal.Decimal `json:"netPay"`
	CreatedAt    string          `json:"createdAt"`
}
