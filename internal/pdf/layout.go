package pdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"novelgrab/internal/classify"
)

// Layout receives styled paragraphs and produces the document file.
// The interface keeps the renderer testable without writing PDFs.
type Layout interface {
	AddTitlePage(novel, chapterLabel, generated string)
	AddHeading(text string)
	AddParagraph(text string, role classify.Role)
	AddPageBreak()
	Save(path string) error
}

type fpdfLayout struct {
	doc        *gofpdf.Fpdf
	translate  func(string) string
	pageWidth  float64
	leftMargin float64
}

func newFpdfLayout() Layout {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 25, 20)
	doc.SetAutoPageBreak(true, 25)
	width, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	return &fpdfLayout{
		doc:        doc,
		translate:  doc.UnicodeTranslatorFromDescriptor(""),
		pageWidth:  width - left - right,
		leftMargin: left,
	}
}

func (l *fpdfLayout) AddTitlePage(novel, chapterLabel, generated string) {
	l.doc.AddPage()
	l.doc.SetY(90)
	l.doc.SetFont("Helvetica", "B", 28)
	l.doc.MultiCell(l.pageWidth, 12, l.translate(novel), "", "C", false)
	l.doc.Ln(8)
	l.doc.SetFont("Helvetica", "", 16)
	l.doc.MultiCell(l.pageWidth, 8, l.translate(chapterLabel), "", "C", false)
	l.doc.Ln(20)
	l.doc.SetFont("Helvetica", "I", 10)
	l.doc.MultiCell(l.pageWidth, 6, l.translate(generated), "", "C", false)
}

func (l *fpdfLayout) AddHeading(text string) {
	l.doc.SetFont("Helvetica", "B", 16)
	l.doc.MultiCell(l.pageWidth, 9, l.translate(text), "", "C", false)
	l.doc.Ln(4)
}

func (l *fpdfLayout) AddParagraph(text string, role classify.Role) {
	switch role {
	case classify.System:
		l.doc.SetFont("Courier", "", 10)
		l.doc.SetFillColor(235, 235, 235)
		l.doc.MultiCell(l.pageWidth, 6, l.translate(text), "", "L", true)
	case classify.Dialog:
		l.doc.SetFont("Helvetica", "", 11)
		l.doc.SetX(l.leftMargin + 8)
		l.doc.MultiCell(l.pageWidth-8, 6, l.translate(text), "", "L", false)
	case classify.Heading:
		l.AddHeading(text)
		return
	default:
		l.doc.SetFont("Helvetica", "", 11)
		l.doc.MultiCell(l.pageWidth, 6, l.translate(text), "", "J", false)
	}
	l.doc.Ln(2)
}

func (l *fpdfLayout) AddPageBreak() {
	l.doc.AddPage()
}

func (l *fpdfLayout) Save(path string) error {
	if err := l.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
