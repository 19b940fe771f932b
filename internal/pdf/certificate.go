// Package pdf renders certificate documents on demand. Nothing is cached;
// every download re-renders from the stored certificate data.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData is everything printed on a certificate.
type CertificateData struct {
	StudentName string
	Level       string
	Number      string
	IssuedAt    time.Time
	IssuerName  string
}

// RenderCertificate builds a one-page A4 landscape certificate.
func RenderCertificate(data CertificateData) ([]byte, error) {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.SetTitle("Certificate "+data.Number, false)
	doc.AddPage()

	w, h := doc.GetPageSize()

	// frame
	doc.SetLineWidth(1.2)
	doc.SetDrawColor(30, 60, 120)
	doc.Rect(10, 10, w-20, h-20, "D")

	doc.SetFont("Helvetica", "B", 34)
	doc.SetTextColor(30, 60, 120)
	doc.SetY(40)
	doc.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(60, 60, 60)
	doc.Ln(8)
	doc.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 26)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)
	doc.CellFormat(0, 14, data.StudentName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(60, 60, 60)
	doc.Ln(4)
	doc.CellFormat(0, 8,
		fmt.Sprintf("has completed level %s of the English course", strings.ToUpper(data.Level)),
		"", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6,
		fmt.Sprintf("Issued on %s", data.IssuedAt.Format("2 January 2006")),
		"", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Certificate no. %s", data.Number), "", 1, "C", false, 0, "")

	doc.SetY(h - 40)
	doc.SetFont("Helvetica", "I", 12)
	doc.CellFormat(0, 6, data.IssuerName, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
