package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

const dateLayout = "2006-01-02 15:04"

// FeedbackReport renders one page per feedback entry for employeeName.
func FeedbackReport(employeeName string, items []models.Feedback) ([]byte, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no feedback to render")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Feedback Report: "+employeeName, true)
	pdf.SetMargins(15, 15, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, fb := range items {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, tr("Feedback Report for: "+employeeName), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 11)
		field(pdf, tr, "Date", fb.CreatedAt.Format(dateLayout))
		if !fb.UpdatedAt.IsZero() && fb.UpdatedAt.Sub(fb.CreatedAt) > time.Second {
			field(pdf, tr, "Last Updated", fb.UpdatedAt.Format(dateLayout))
		}
		if fb.IsAnonymous || fb.Manager.ID == 0 {
			field(pdf, tr, "From", "Anonymous")
		} else {
			field(pdf, tr, "From", fb.Manager.Name)
		}
		field(pdf, tr, "Sentiment", capitalize(string(fb.Sentiment)))
		field(pdf, tr, "Acknowledged", yesNo(fb.Acknowledged))
		pdf.Ln(4)

		section(pdf, tr, "Strengths", fb.Strengths)
		section(pdf, tr, "Areas to Improve", fb.AreasToImprove)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, 7, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}

func section(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, tr(heading), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(body), "", "L", false)
	pdf.Ln(3)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
