package infra

// pdf.go — printable documents rendered with go-pdf/fpdf.
// Two layouts exist:
//   - quote: header, client/vehicle block, itemized or service-line table,
//     subtotal/IGV/total footer
//   - job boleta: header, client/vehicle block, task list, totals of the
//     job's latest quote
// Output files are written to storagePath/{cotizacion|boleta}_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/mirandajandir7-prog/mitaller/internal/dto"
)

const businessName = "APS MOTORSPORTS"

// GenerateQuotePDF renders a quote into an A4 PDF and returns its path.
func GenerateQuotePDF(view *dto.QuotePrintResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("cotizacion_%d.pdf", view.Quote.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	writeHeader(pdf, contentW, fmt.Sprintf("Cotización N° %d", view.Quote.ID),
		view.Quote.CreatedAt.Format("02/01/2006"))

	// ── Client / vehicle block ───────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Cliente: "+view.Client.FullName, "", 1, "L", false, 0, "")
	vehicleLine := view.Vehicle.Plate
	if view.Vehicle.Brand != "" || view.Vehicle.Model != "" {
		vehicleLine = fmt.Sprintf("%s  %s %s", view.Vehicle.Plate, view.Vehicle.Brand, view.Vehicle.Model)
	}
	pdf.CellFormat(contentW, 6, "Vehículo: "+vehicleLine, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Lines ────────────────────────────────────────────────────────────────
	if len(view.Quote.ServiceLines) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Servicios solicitados", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range view.Quote.ServiceLines {
			pdf.CellFormat(contentW, 6, "- "+line, "", 1, "L", false, 0, "")
		}
	} else {
		col1 := contentW * 0.52 // description
		col2 := contentW * 0.12 // qty
		col3 := contentW * 0.18 // unit price
		col4 := contentW * 0.18 // line total

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(col1, 6, "Descripción", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "P. unit.", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, it := range view.Quote.Items {
			desc := truncate(it.Desc, 48)
			pdf.CellFormat(col1, 6, desc, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, it.Qty.StringFixed(2), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, "S/ "+it.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, "S/ "+it.Total.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.8, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "S/ "+view.Quote.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	igvLabel := "IGV (no factura):"
	if view.Quote.RequireInvoice {
		igvLabel = fmt.Sprintf("IGV %s%%:", view.Quote.IGVRate.Shift(2).String())
	}
	pdf.CellFormat(contentW*0.8, 6, igvLabel, "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "S/ "+view.Quote.IGV.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.8, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 7, "S/ "+view.Quote.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateJobPDF renders the boleta of a work order and returns its path.
func GenerateJobPDF(doc *dto.PrintableJobResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("boleta_%d.pdf", doc.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	writeHeader(pdf, contentW, fmt.Sprintf("Orden de Trabajo N° %d", doc.ID), doc.Date)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Cliente: "+doc.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6,
		fmt.Sprintf("Vehículo: %s  %s %s", doc.VehiclePlate, doc.VehicleBrand, doc.VehicleModel),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Trabajos realizados", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, task := range doc.Tasks {
		pdf.CellFormat(contentW, 6, "- "+task, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.8, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "S/ "+doc.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.8, 6, "IGV:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 6, "S/ "+doc.IGV.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.8, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.2, 7, "S/ "+doc.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func writeHeader(pdf *fpdf.Fpdf, contentW float64, title, date string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+date, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}
