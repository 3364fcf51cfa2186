package proposal

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/leadflow/server/internal/models"
	appErr "github.com/leadflow/server/pkg/errors"
)

// Renderer produces a single-page PDF proposal document for a lead: client
// name, date, summary, labor items, material items, and the ballpark cost
// estimate.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render builds the proposal document and returns the PDF bytes.
func (r *Renderer) Render(lead *models.Lead) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "Project Proposal", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Client: "+lead.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+r.now().Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	r.section(pdf, "Project Summary")
	pdf.MultiCell(0, 6, lead.AISummary, "", "L", false)
	pdf.Ln(4)

	r.section(pdf, "Scope of Work")
	r.bullets(pdf, lead.AILaborBreakdown)
	pdf.Ln(4)

	r.section(pdf, "Potential Materials")
	r.bullets(pdf, lead.AIMaterialList)
	pdf.Ln(4)

	r.section(pdf, "Ballpark Cost Estimate")
	pdf.MultiCell(0, 6, lead.AICostEstimate, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "render proposal pdf failed")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
}

func (r *Renderer) bullets(pdf *fpdf.Fpdf, items []string) {
	for _, item := range items {
		pdf.CellFormat(0, 6, "- "+item, "", 1, "L", false, 0, "")
	}
}
