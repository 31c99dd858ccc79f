// Package pdf renders bill receipts as PDF documents. Rendering is
// deterministic for a given bill: the document date comes from the bill
// record, not the clock, so regenerating a receipt reproduces it.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"frontdesk/internal/adapters/observability"
	"frontdesk/internal/domain"
)

// Letterhead is the hotel identity printed at the top of every receipt.
type Letterhead struct {
	Name    string
	Address string
	GSTIN   string
	Phone   string
}

type Generator struct {
	dir  string
	head Letterhead
}

func NewGenerator(dir string, head Letterhead) *Generator {
	return &Generator{dir: dir, head: head}
}

// Render writes <dir>/<bill_no>.pdf, creating the directory on demand, and
// returns the path.
func (g *Generator) Render(b domain.Bill) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		observability.ObserveReceipt("render", err)
		return "", &domain.ExportError{Stage: "render", Err: err}
	}
	path := filepath.Join(g.dir, b.BillNo+".pdf")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(b.CreatedAt)
	doc.SetModificationDate(b.CreatedAt)
	doc.SetTitle("Receipt "+b.BillNo, false)
	doc.SetMargins(19, 19, 19)
	doc.AddPage()

	// Letterhead
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(26, 26, 26)
	doc.CellFormat(0, 10, g.head.Name, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(51, 51, 51)
	doc.CellFormat(0, 5, g.head.Address, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "GSTIN: "+g.head.GSTIN, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "Phone: "+g.head.Phone, "", 1, "C", false, 0, "")
	doc.Ln(4)

	// Receipt number and date
	doc.SetTextColor(85, 85, 85)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(86, 6, "Receipt No: "+b.BillNo, "", 0, "L", false, 0, "")
	doc.CellFormat(86, 6, "Date: "+b.CreatedAt.Format("02-01-2006 15:04:05"), "", 1, "R", false, 0, "")
	doc.Ln(2)
	line(doc)
	doc.Ln(4)

	// Guest block
	doc.SetFont("Helvetica", "", 10)
	labelValue(doc, "Guest Name:", b.GuestName)
	labelValue(doc, "Room Number:", "Room "+b.RoomNumber)
	labelValue(doc, "Check-in Date:", b.CheckInDate)
	labelValue(doc, "Check-out Date:", b.CheckOutDate)
	doc.Ln(4)

	// Charges table
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(44, 62, 80)
	doc.SetTextColor(245, 245, 245)
	doc.CellFormat(76, 8, "Description", "1", 0, "C", true, 0, "")
	doc.CellFormat(32, 8, "Quantity", "1", 0, "C", true, 0, "")
	doc.CellFormat(32, 8, "Rate", "1", 0, "C", true, 0, "")
	doc.CellFormat(32, 8, "Amount", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(26, 26, 26)
	doc.CellFormat(76, 8, "Room Charges", "1", 0, "L", false, 0, "")
	doc.CellFormat(32, 8, fmt.Sprintf("%d Nights", b.Nights), "1", 0, "C", false, 0, "")
	doc.CellFormat(32, 8, money(b.Rate), "1", 0, "R", false, 0, "")
	doc.CellFormat(32, 8, money(b.Subtotal), "1", 1, "R", false, 0, "")
	doc.Ln(4)

	// Totals
	totalRow(doc, "Subtotal:", b.Subtotal, false)
	totalRow(doc, fmt.Sprintf("CGST (%.0f%%):", domain.TaxRate*100), b.CGST, false)
	totalRow(doc, fmt.Sprintf("SGST (%.0f%%):", domain.TaxRate*100), b.SGST, false)
	totalRow(doc, "Total Amount:", b.Total, true)

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(85, 85, 85)
	doc.CellFormat(0, 5, "Thank you for staying with us!", "", 1, "C", false, 0, "")

	if err := doc.OutputFileAndClose(path); err != nil {
		observability.ObserveReceipt("render", err)
		return "", &domain.ExportError{Stage: "render", Err: err}
	}
	observability.ObserveReceipt("render", nil)
	return path, nil
}

// Path returns where Render will put (or has put) the receipt for a bill.
func (g *Generator) Path(billNo string) string {
	return filepath.Join(g.dir, billNo+".pdf")
}

// money formats an amount with the ASCII currency marker; the core fonts
// have no rupee glyph.
func money(v float64) string { return fmt.Sprintf("Rs %.2f", v) }

func line(doc *fpdf.Fpdf) {
	x, y := doc.GetX(), doc.GetY()
	doc.SetDrawColor(150, 150, 150)
	doc.Line(x, y, 210-19, y)
}

func labelValue(doc *fpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func totalRow(doc *fpdf.Fpdf, label string, v float64, em bool) {
	if em {
		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(192, 57, 43)
	} else {
		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(26, 26, 26)
	}
	doc.CellFormat(140, 7, label, "", 0, "R", false, 0, "")
	doc.CellFormat(32, 7, money(v), "", 1, "R", false, 0, "")
}
