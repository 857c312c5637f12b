// Package export renders issued certificates to portable documents and
// delivers them: write to the export directory, optionally archive to
// S3-compatible object storage, and only then confirm delivery with the
// ledger. A failure anywhere before that last step leaves the ledger
// untouched.
package export

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/go-pdf/fpdf"
)

// Document is a rendered certificate ready for export.
type Document struct {
	pdf *fpdf.Fpdf
}

// Bytes serializes the document to PDF bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorExportFailed, err)
	}
	return buf.Bytes(), nil
}

// Renderer lays out a certificate on an A4 page.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the visual document for a certificate. The patent fields
// come from the certificate's snapshot, not from the live config, so a
// re-download after a config change reproduces the original document.
func (r *Renderer) Render(cert *models.Certificate, cfg models.PatentConfig) (*Document, error) {
	if cert == nil {
		return nil, fmt.Errorf("%w: no certificate", common.ErrorExportFailed)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Patent Usage Certificate "+cert.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 20, "Patent Usage Certificate", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Certificate No. "+cert.ID, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Patent", cert.PatentName},
		{"Patent No.", cert.PatentNo},
		{"Licensed use", cert.ProjectName},
		{"Licensee", cert.ApplicantName},
		{"Issued", cert.IssueDate},
	}
	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		pdf.CellFormat(45, 10, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, row[1], "1", 1, "L", false, 0, "")
	}

	if cfg.BackgroundURL != "" {
		// The background reference is carried as metadata only; embedding
		// remote or data-URL images is out of scope for the console build.
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Ln(6)
		pdf.CellFormat(0, 6, "Background: custom", "", 1, "L", false, 0, "")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", common.ErrorExportFailed, pdf.Error())
	}
	return &Document{pdf: pdf}, nil
}
