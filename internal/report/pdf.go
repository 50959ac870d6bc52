package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/version"
)

// Figure is a PNG image appended to the PDF report
type Figure struct {
	Title string
	PNG   []byte
}

const (
	pageMargin = 10.0
	lineHeight = 6.0
	rowHeight  = 4.5
)

// WritePDF writes the calculation report: project data, the summary, the
// four stage tables and any figures
func WritePDF(w io.Writer, rep Report, figures ...Figure) error {
	pdf, err := buildPDF(rep, figures)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// SavePDF writes the calculation report to path
func SavePDF(path string, rep Report, figures ...Figure) error {
	pdf, err := buildPDF(rep, figures)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func buildPDF(rep Report, figures []Figure) (*gofpdf.Fpdf, error) {
	if rep.Result == nil {
		return nil, errors.New("report has no results")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.SetTitle(titleOf(rep), true)
	pdf.SetCreator(version.Name+" "+version.Version, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, titleOf(rep))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	if rep.ID != "" {
		pdf.Cell(0, lineHeight, "Project ID: "+rep.ID)
		pdf.Ln(lineHeight)
	}
	if !rep.Generated.IsZero() {
		pdf.Cell(0, lineHeight, "Date: "+rep.Generated.Format("2006-01-02"))
		pdf.Ln(lineHeight)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight, "Summary")
	pdf.Ln(lineHeight + 2)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summaryRows(rep) {
		pdf.CellFormat(80, lineHeight, fmt.Sprint(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, cellText(row[1]), "", 1, "L", false, 0, "")
	}

	for _, s := range stageSheets {
		pdf.AddPage()
		stageTable(pdf, s, rep.Result.Table)
	}

	for i, fig := range figures {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, lineHeight, fig.Title)
		pdf.Ln(lineHeight + 2)

		name := "figure" + strconv.Itoa(i)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(fig.PNG))
		pdf.ImageOptions(name, pageMargin, pdf.GetY(), 0, 170, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}
	return pdf, nil
}

func stageTable(pdf *gofpdf.Fpdf, s sheet, t chimney.Table) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, lineHeight, s.Name)
	pdf.Ln(lineHeight + 2)

	headers := s.headers()
	pageWidth, _ := pdf.GetPageSize()
	width := (pageWidth - 2*pageMargin) / float64(len(headers)+1)

	pdf.SetFont("Helvetica", "B", 6.5)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(width, rowHeight+1, "No.", "1", 0, "C", true, 0, "")
	for _, h := range headers {
		pdf.CellFormat(width, rowHeight+1, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for i, lv := range t {
		if lv.Status == chimney.StatusTension && len(s.Texts) > 0 {
			pdf.SetTextColor(200, 0, 0)
		}
		pdf.CellFormat(width, rowHeight, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		for _, c := range s.Numbers {
			pdf.CellFormat(width, rowHeight, fmt.Sprintf("%.3f", c.Value(lv)), "1", 0, "R", false, 0, "")
		}
		for _, c := range s.Texts {
			pdf.CellFormat(width, rowHeight, c.Value(lv), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
}

func titleOf(rep Report) string {
	if rep.Name == "" {
		return "RC Chimney Design"
	}
	return "RC Chimney Design: " + rep.Name
}

func cellText(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 4, 64)
	}
	return fmt.Sprint(v)
}
