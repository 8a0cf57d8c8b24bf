package history

import (
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/money"
)

const maxStatementRows = 500

// Statement is the input of a printable account statement.
type Statement struct {
	User        domain.PublicUser
	Balance     decimal.Decimal
	From, To    time.Time
	Entries     []Entry
	GeneratedAt time.Time
}

var statementCols = []float64{26, 26, 70, 34, 26}

// WritePDF renders the statement as an A4 PDF.
func (s Statement) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Money Tracker Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+periodLabel(s.From, s.To))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Account: "+s.User.Name+" ("+maskPhone(s.User.Phone)+")")
	pdf.Ln(10)

	in, out := Totals(s.Entries)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	sumW := []float64{62, 62, 58}
	pdf.CellFormat(sumW[0], 10, "Money in", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Money out", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Current balance", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, money.Format(in), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, money.Format(out), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, money.Format(s.Balance), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	tableHeader(pdf)
	for i, e := range s.Entries {
		if i >= maxStatementRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			tableHeader(pdf)
		}
		details := ""
		if e.Details != nil {
			details = *e.Details
		}
		pdf.CellFormat(statementCols[0], 8, strings.ToUpper(e.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(statementCols[1], 8, e.Date.UTC().Format(domain.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(statementCols[2], 8, trimTo(e.Description, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(statementCols[3], 8, signed(e), "1", 0, "R", false, 0, "")
		pdf.CellFormat(statementCols[4], 8, trimTo(details, 14), "1", 1, "L", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+s.GeneratedAt.UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	return pdf.Output(w)
}

func tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(statementCols[0], 8, "TYPE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(statementCols[1], 8, "DATE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(statementCols[2], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(statementCols[3], 8, "AMOUNT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(statementCols[4], 8, "DETAILS", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
}

func periodLabel(from, to time.Time) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all time"
	case from.IsZero():
		return "up to " + to.Format(domain.DateLayout)
	case to.IsZero():
		return "from " + from.Format(domain.DateLayout)
	}
	return from.Format(domain.DateLayout) + " to " + to.Format(domain.DateLayout)
}

func signed(e Entry) string {
	switch e.Type {
	case TypeSpent, TypeLent:
		return "-" + money.Format(e.Amount)
	}
	return money.Format(e.Amount)
}

func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
