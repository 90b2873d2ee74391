// Package render — PDF renderer.
// Builds a styled PDF report using gofpdf: title and metadata, the
// diagram source, the cost table, the Terraform in monospace, and the
// docs rendered from Markdown (headings, lists, paragraphs).
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/archgenie/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders the result as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render builds the PDF report.
func (r *PDFRenderer) Render(result *core.GenerateResult, diagram core.DiagramArtifact, meta core.GenerationMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title and run metadata.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, meta.AppName, "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	line := fmt.Sprintf("Provider: %s · Region: %s · Generated: %s", meta.Provider, meta.Region, meta.GeneratedAt)
	pdf.MultiCell(0, 5, line, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sectionHeading(pdf, "Architecture Diagram")
	if diagram.Fallback {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "The diagram could not be rendered; its source follows.", "", "L", false)
		pdf.Ln(1)
	}
	writeCode(pdf, diagram.Source, "No diagram generated.")

	sectionHeading(pdf, "Estimated Monthly Cost")
	writeCostTable(pdf, result.Cost)

	sectionHeading(pdf, "Infrastructure Code")
	writeCode(pdf, result.Terraform, "No infrastructure code generated.")

	sectionHeading(pdf, "Documentation")
	writeDocs(pdf, result.Docs)

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

func sectionHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, text, "", "L", false)
	pdf.Ln(1)
}

// writeCode renders a code block in monospace with a light background,
// or a placeholder when the block is empty.
func writeCode(pdf *gofpdf.Fpdf, code, placeholder string) {
	if strings.TrimSpace(code) == "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, placeholder, "", "L", false)
		return
	}
	pdf.SetFont("Courier", "", 9)
	pdf.SetFillColor(245, 245, 245)
	for _, ln := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		pdf.MultiCell(0, 4.5, ln, "", "L", true)
	}
	pdf.Ln(2)
}

// writeCostTable renders the cost line items and the total row.
func writeCostTable(pdf *gofpdf.Fpdf, cost core.CostBreakdown) {
	if len(cost.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "No cost estimate available.", "", "L", false)
		return
	}

	headers := []string{"Cloud", "Service", "SKU", "Region", "Qty", "Unit/mo", "Monthly"}
	widths := []float64{20, 35, 30, 30, 12, 25, 25}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range cost.Items {
		cells := []string{
			item.Cloud, item.Service, item.SKU, item.Region,
			fmt.Sprintf("%d", item.Qty),
			fmt.Sprintf("%.2f", item.UnitMonthly),
			fmt.Sprintf("%.2f", item.Monthly),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4]+widths[5], 6,
		fmt.Sprintf("Total (%s)", cost.Currency), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", cost.TotalEstimate), "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "I", 8)
	for _, note := range cost.Notes {
		pdf.MultiCell(0, 4, note, "", "L", false)
	}
	pdf.Ln(2)
}

// writeDocs renders the docs Markdown line by line: headings get larger
// bold fonts, list items get bullets, everything else is a paragraph.
func writeDocs(pdf *gofpdf.Fpdf, docs string) {
	if strings.TrimSpace(docs) == "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "No documentation generated.", "", "L", false)
		return
	}

	inCodeBlock := false
	for _, line := range strings.Split(docs, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}
		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}
		if trimmed == "" {
			pdf.Ln(3)
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, ch := range trimmed {
				if ch != '#' {
					break
				}
				level++
			}
			writeHeading(pdf, strings.TrimSpace(strings.TrimLeft(trimmed, "# ")), level)
			continue
		}
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, "• "+cleanInline(strings.TrimSpace(trimmed[2:])), "", "L", false)
			continue
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, cleanInline(trimmed), "", "L", false)
	}
}

// writeHeading sets the font size based on heading level and writes text.
func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 16, 2: 13, 3: 12, 4: 11, 5: 10, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInline(text), "", "L", false)
	pdf.Ln(1)
}

var (
	italicRe = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
	linkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// cleanInline strips inline Markdown formatting for PDF text.
func cleanInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRe.ReplaceAllString(text, " $1 ")
	text = codeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
