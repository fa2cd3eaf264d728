// Package pdf renders an Invoice into a fixed-layout A4 PDF document:
// title, dual address block, metadata block, itemized table, totals and
// a payment footer. Rendering is deterministic for identical input.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "£"

// dateFormat is the day/month/year layout used on the rendered invoice.
const dateFormat = "02/01/2006"

// Layout constants in millimetres on an A4 page with 20mm margins,
// leaving 170mm of usable width.
const (
	pageMargin  = 20.0
	addrColW    = 85.0
	lineH       = 5.5
	metaLabelW  = 35.0
	metaValueW  = 60.0
	totalLabelW = 130.0
	totalValueW = 40.0
)

// Item table column widths: description, qty, unit price, total.
var itemColW = [4]float64{95, 15, 30, 30}

// Generator renders invoices for a single business.
type Generator struct {
	business models.BusinessDetails
	symbol   string
	log      zerolog.Logger
}

// NewGenerator creates a Generator for the given business. An empty
// currency symbol falls back to DefaultCurrencySymbol.
func NewGenerator(business models.BusinessDetails, currencySymbol string) *Generator {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	return &Generator{
		business: business,
		symbol:   currencySymbol,
		log:      logger.WithComponent("pdf"),
	}
}

// Generate renders the invoice as a PDF at outputPath, creating parent
// directories as needed and overwriting any existing file. I/O failures
// are returned to the caller unmodified beyond wrapping.
func (g *Generator) Generate(inv models.Invoice, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	// Core fonts are cp1252; the translator maps the currency symbol.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	g.writeTitle(doc)
	g.writeAddressBlock(doc, inv, tr)
	g.writeMetadata(doc, inv)
	g.writeItemTable(doc, inv, tr)
	g.writeTotals(doc, inv, tr)
	g.writeFooter(doc, tr)

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		g.log.Error().Err(err).Str("path", outputPath).Msg("Failed to write invoice PDF")
		return fmt.Errorf("failed to write invoice PDF: %w", err)
	}

	g.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("path", outputPath).
		Msg("Invoice PDF generated")
	return nil
}

// money formats an exact decimal as a currency string with two decimal
// places, e.g. "£650.00".
func (g *Generator) money(d decimal.Decimal) string {
	return g.symbol + d.StringFixed(2)
}

func (g *Generator) writeTitle(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 28)
	doc.CellFormat(0, 14, "INVOICE", "", 1, "R", false, 0, "")
	doc.Ln(10)
}

func (g *Generator) writeAddressBlock(doc *gofpdf.Fpdf, inv models.Invoice, tr func(string) string) {
	from := businessAddressLines(g.business)
	to := clientAddressLines(inv.Client)
	from, to = padColumns(from, to)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(addrColW, lineH, "From:", "", 0, "L", false, 0, "")
	doc.CellFormat(addrColW, lineH, "To:", "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.SetFont("Helvetica", "", 10)
	for i := range from {
		doc.CellFormat(addrColW, lineH, tr(from[i]), "", 0, "L", false, 0, "")
		doc.CellFormat(addrColW, lineH, tr(to[i]), "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (g *Generator) writeMetadata(doc *gofpdf.Fpdf, inv models.Invoice) {
	paymentTerms := "Due on receipt"
	if !inv.DueOnReceipt() {
		paymentTerms = "Due by " + inv.DueDate.Format(dateFormat)
	}

	details := [][2]string{
		{"Invoice Number:", inv.InvoiceNumber},
		{"Issue Date:", inv.IssueDate.Format(dateFormat)},
		{"Due Date:", inv.DueDate.Format(dateFormat)},
		{"Payment Terms:", paymentTerms},
	}

	for _, detail := range details {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(metaLabelW, lineH, detail[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(metaValueW, lineH, detail[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (g *Generator) writeItemTable(doc *gofpdf.Fpdf, inv models.Invoice, tr func(string) string) {
	headers := [4]string{"Description", "Qty", "Unit Price (GBP)", "Total (GBP)"}
	aligns := [4]string{"L", "C", "R", "R"}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, header := range headers {
		doc.CellFormat(itemColW[i], 8, header, "1", 0, aligns[i], true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, item := range inv.LineItems {
		cells := [4]string{
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			g.money(item.Amount),
			g.money(item.LineTotal()),
		}
		for i, cell := range cells {
			doc.CellFormat(itemColW[i], 8, tr(cell), "1", 0, aligns[i], false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(5)
}

func (g *Generator) writeTotals(doc *gofpdf.Fpdf, inv models.Invoice, tr func(string) string) {
	rows := [][2]string{
		{"Subtotal:", g.money(inv.Subtotal())},
		{"VAT:", inv.VATStatus},
		{"Total:", g.money(inv.Total())},
	}

	for i, row := range rows {
		style := ""
		if i == len(rows)-1 {
			style = "B" // Total row is emphasized
		}
		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(totalLabelW, 6, row[0], "", 0, "R", false, 0, "")
		doc.CellFormat(totalValueW, 6, tr(row[1]), "", 1, "R", false, 0, "")
	}
	doc.Ln(15)
}

func (g *Generator) writeFooter(doc *gofpdf.Fpdf, tr func(string) string) {
	lines := []string{
		"Many thanks and kind regards,",
		g.business.Name,
		g.business.SortCode,
		g.business.AccountNumber,
	}
	doc.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		doc.CellFormat(0, lineH, tr(line), "", 1, "L", false, 0, "")
	}
}

// businessAddressLines returns the "From" column: every business field
// on its own line.
func businessAddressLines(b models.BusinessDetails) []string {
	return []string{b.Name, b.AddressLine1, b.City, b.Postcode, b.Email}
}

// clientAddressLines returns the "To" column. Name and company lines are
// emitted only when non-empty, so an absent name never leaves a blank
// line above the company.
func clientAddressLines(c models.ClientDetails) []string {
	lines := make([]string, 0, 5)
	if c.Name != "" {
		lines = append(lines, c.Name)
	}
	if c.Company != "" {
		lines = append(lines, c.Company)
	}
	return append(lines, c.AddressLine1, c.City, c.Postcode)
}

// padColumns extends the shorter column with empty lines so both render
// to the same height in the fixed-row layout.
func padColumns(a, b []string) ([]string, []string) {
	for len(a) < len(b) {
		a = append(a, "")
	}
	for len(b) < len(a) {
		b = append(b, "")
	}
	return a, b
}
