// Package render — PDF renderer.
// Prints the catalog using gofpdf: a bold heading per plant, one
// "Label: detail" line per recorded feature, and the image titles.
package render

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// PDFRenderer renders the catalog as a PDF document.
type PDFRenderer struct {
	Title string
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Title: "Plant Catalog"}
}

// Render converts the records into PDF bytes.
func (r *PDFRenderer) Render(records []*core.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; names carry accents and '×'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if r.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(r.Title), "", "L", false)
		pdf.Ln(4)
	}

	for _, rec := range records {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(rec.DisplayName()), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "", 10)
		for i, label := range rec.Labels {
			if i >= len(rec.Fields) || rec.Fields[i] == "" {
				continue
			}
			pdf.MultiCell(0, 5, tr(label+": "+rec.Fields[i]), "", "L", false)
		}

		if len(rec.Tail) > 0 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr("Images: "+strings.Join(rec.Tail, ", ")), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
