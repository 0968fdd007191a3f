package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"gradscout/internal/domain/model"
)

// ExportListing renders one listing as a single-page PDF: title, company and
// location, description, and the source review.
func ExportListing(j model.JobListing) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(180, 8, j.JobTitle, "", "L", false)

	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(180, 6, fmt.Sprintf("%s - %s", j.Company, j.Location), "", "L", false)

	doc.SetLineWidth(0.5)
	y := doc.GetY() + 2
	doc.Line(15, y, 195, y)
	doc.SetY(y + 6)

	doc.SetFont("Helvetica", "B", 12)
	doc.MultiCell(180, 6, "Job Description:", "", "L", false)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(180, 6, j.Description, "", "L", false)

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.MultiCell(180, 6, "AI Source Review:", "", "L", false)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(180, 6, fmt.Sprintf("Source: %s", j.Source.Name), "", "L", false)
	doc.MultiCell(180, 6, fmt.Sprintf("Rating: %.0f / 5", j.Source.Rating), "", "L", false)
	doc.MultiCell(180, 6, fmt.Sprintf("%q", j.Source.Summary), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from title and company, spaces replaced
// with underscores.
func Filename(j model.JobListing) string {
	name := fmt.Sprintf("%s_%s.pdf", j.JobTitle, j.Company)
	return strings.ReplaceAll(name, " ", "_")
}
