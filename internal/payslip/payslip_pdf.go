package payslip

import (
	"bytes"
	"fmt"
	"strings"
)

// renderPayslipPDF lays the payslip out as a single-page PDF with one text
// line per field and line item.
func renderPayslipPDF(p PayslipDetailResponse) ([]byte, error) {
	lines := []string{
		fmt.Sprintf("Payslip for %s", p.PeriodLabel),
		"",
		fmt.Sprintf("Employee ID: %s", p.EmployeeID),
		fmt.Sprintf("Employee Name: %s", p.EmployeeName),
		fmt.Sprintf("Designation: %s", p.Designation),
		fmt.Sprintf("Date of Joining: %s", p.DateJoining),
		fmt.Sprintf("Employee Type: %s", p.EmployeeType),
		fmt.Sprintf("Location: %s", p.Location),
		fmt.Sprintf("Bank: %s  Account: %s", p.BankName, p.AccountNo),
		fmt.Sprintf("PAN: %s", p.PAN),
	}
	if p.ProvidentFund != nil {
		lines = append(lines, fmt.Sprintf("PF No: %s", *p.ProvidentFund))
	}
	if p.UAN != nil {
		lines = append(lines, fmt.Sprintf("UAN: %s", *p.UAN))
	}
	if p.ESIC != nil {
		lines = append(lines, fmt.Sprintf("ESIC: %s", *p.ESIC))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Days in Month: %d  Working Days: %d  LOP Days: %d", p.DaysInPeriod, p.WorkingDays, p.LOP),
		"",
		"Earnings",
	)
	for _, item := range p.Earnings {
		lines = append(lines, fmt.Sprintf("  %s: %s", item.Component, item.Amount.StringFixed(2)))
	}
	lines = append(lines, "", "Deductions")
	for _, item := range p.Deductions {
		lines = append(lines, fmt.Sprintf("  %s: %s", item.Component, item.Amount.StringFixed(2)))
	}
	lines = append(lines,
		fmt.Sprintf("  LOP Deduction: %.2f", p.LOPDeduction),
		"",
		fmt.Sprintf("Gross Pay: %s", p.GrossPay.StringFixed(2)),
		fmt.Sprintf("Total Deductions: %s", p.TotalDeductions.StringFixed(2)),
		fmt.Sprintf("Net Pay: %s", p.NetPay.StringFixed(2)),
	)

	return buildPDF(lines)
}

func buildPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			fmt.Fprintf(&content, "(%s) Tj\n", escaped)
			continue
		}
		fmt.Fprintf(&content, "T* (%s) Tj\n", escaped)
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets)+1, xrefStart)

	return out.Bytes(), nil
}

// pdfEscape escapes string-literal delimiters and drops bytes outside
// printable ASCII, which the built-in Helvetica encoding cannot show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
