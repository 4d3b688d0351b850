package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0

	pdfDisclaimer = "Documento generato da MUV Fitness. Le indicazioni non sostituiscono il parere di un professionista."
)

// PDFExporter renders meal plans and shopping lists to A4 documents.
// The optional header logo is fetched over HTTP; a fetch failure never
// aborts the export.
type PDFExporter struct {
	logoURL string
	client  *http.Client
}

func NewPDFExporter(logoURL string) *PDFExporter {
	return &PDFExporter{
		logoURL: logoURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// newDoc creates the A4 document with margins and the fixed footer. The
// footer carries the disclaimer and "Pagina N di TOTALE"; the total is
// stamped over the {nb} alias once all pages are laid out.
func (e *PDFExporter) newDoc(title string) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(false, pdfMarginBottom)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetY(pageH - pdfMarginBottom + 4)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 4, tr(pdfDisclaimer), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Pagina %d di {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	e.drawLogo(pdf)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf, tr
}

// drawLogo fetches and places the header image if configured. Any failure is
// ignored so the export always proceeds.
func (e *PDFExporter) drawLogo(pdf *fpdf.Fpdf) {
	if e.logoURL == "" {
		return
	}

	resp, err := e.client.Get(e.logoURL)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return
	}

	imageType := "PNG"
	if strings.Contains(resp.Header.Get("Content-Type"), "jpeg") {
		imageType = "JPG"
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	if pdf.Err() {
		// Unreadable image; clear the error and continue without it.
		pdf.ClearError()
		return
	}
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("logo", pageW/2-15, pdfMarginTop, 30, 0, false, opts, 0, "")
	pdf.SetY(pdfMarginTop + 18)
}

// ensureSpace starts a new page when the next block of the given height
// would cross the bottom margin.
func ensureSpace(pdf *fpdf.Fpdf, needed float64) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+needed > pageH-pdfMarginBottom {
		pdf.AddPage()
	}
}

// PlanPDF renders a meal plan. Daily and weekly plans share the same per-day
// routine; weekly plans iterate the seven named days.
func (e *PDFExporter) PlanPDF(plan *models.MealPlan) ([]byte, error) {
	pdf, tr := e.newDoc("Piano Alimentare MUV")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Obiettivo: %d kcal al giorno", plan.TargetCalories)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range plan.DayKeys() {
		dayPlan, ok := plan.Days[day]
		if !ok {
			continue
		}
		e.renderDay(pdf, tr, day, dayPlan, plan.PlanType == models.PlanWeekly)
	}

	return output(pdf)
}

// renderDay draws one day's five slots in canonical order.
func (e *PDFExporter) renderDay(pdf *fpdf.Fpdf, tr func(string) string, day string, dayPlan models.DayPlan, showDayName bool) {
	if showDayName {
		ensureSpace(pdf, 12)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(0, 8, tr(day), "", 1, "L", true, 0, "")
		pdf.Ln(2)
	}

	for _, slot := range models.SlotOrder {
		meal, ok := dayPlan[slot]
		if !ok {
			continue
		}

		// Block height: slot header, description, one line per ingredient.
		needed := 7.0 + 5.0 + float64(len(meal.Ingredients))*5.0 + 3.0
		ensureSpace(pdf, needed)

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s (%d kcal)", models.SlotLabels[slot], meal.Kcal)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(meal.Description), "", "L", false)

		pdf.SetFont("Helvetica", "", 9)
		for _, ingredient := range meal.Ingredients {
			pdf.CellFormat(0, 5, tr("- "+ingredient), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
}

// ShoppingPDF renders a costed shopping list grouped by category.
func (e *PDFExporter) ShoppingPDF(list models.ShoppingList) ([]byte, error) {
	pdf, tr := e.newDoc("Lista della Spesa MUV")

	for _, group := range list.Groups {
		ensureSpace(pdf, 10+float64(len(group.Items))*6)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(0, 7, tr(group.Category), "", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, item := range group.Items {
			ensureSpace(pdf, 6)
			pdf.CellFormat(110, 6, tr(item.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, tr(item.Quantity), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%.2f EUR", item.Cost)), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	ensureSpace(pdf, 10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, tr("Totale"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%.2f EUR", list.Total)), "T", 1, "R", false, 0, "")

	if len(list.Unmatched) > 0 {
		ensureSpace(pdf, 10+float64(len(list.Unmatched))*5)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, tr("Ingredienti senza prezzo di riferimento:"), "", 1, "L", false, 0, "")
		for _, name := range list.Unmatched {
			pdf.CellFormat(0, 5, tr("- "+name), "", 1, "L", false, 0, "")
		}
	}

	return output(pdf)
}

// output finalises the document. Nothing is returned on failure: the export
// is atomic, either a complete file or an error.
func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf export failed: %w", err)
	}
	return buf.Bytes(), nil
}
