package payslip

var (
	BuildPayslip       = buildPayslip
	MapRepositoryError = mapRepositoryError
	RenderPayslipPDF   = renderPayslipPDF
)
