package services

import (
	"bytes"
	"fmt"
	"strconv"

	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// Page geometry in millimeters (A4 portrait).
const (
	invPageW        = 210.0
	invPageH        = 297.0
	invMarginL      = 15.0
	invMarginTop    = 15.0
	invContentW     = invPageW - 2*invMarginL
	invFooterH      = 24.0
	invFooterY      = invPageH - invFooterH - 10.0
	invContentLimit = invFooterY - 6.0 // blocks must not enter the footer zone

	invRowLineH = 5.0
	invRowPad   = 4.0
)

// InvoiceService renders the persisted booking snapshot into a PDF. Amounts
// come only from the snapshot; the catalog is consulted for display titles
// and nothing else.
type InvoiceService struct {
	BookingRepo repositories.BookingRepository
	TourRepo    repositories.TourRepository
	RequestID   string
	Loader      func(int64) (models.Booking, map[string]string, error)
}

func (s InvoiceService) load(bookingID int64) (models.Booking, map[string]string, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, nil, err
	}
	titles := make(map[string]string, len(b.Items))
	for _, it := range b.Items {
		if _, ok := titles[it.CatalogRef]; ok {
			continue
		}
		if tour, err := s.TourRepo.GetByRef(it.CatalogRef); err == nil {
			titles[it.CatalogRef] = tour.Title
		}
	}
	return b, titles, nil
}

// GenerateInvoice returns the PDF bytes and a download filename. The caller
// is responsible for the not-found check surfacing as 404.
func (s InvoiceService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	b, titles, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "invoice", "generate", "booking_id="+strconv.FormatInt(b.ID, 10))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.SetAutoPageBreak(false, 0)

	blocks := buildInvoiceBlocks(b, titles)
	spans := planLayout(pdf, blocks)

	pdf.AddPage()
	page := 1
	for _, sp := range spans {
		for page < sp.page {
			drawInvoiceFooter(pdf)
			pdf.AddPage()
			page++
		}
		sp.block.draw(pdf, sp.y0)
	}
	drawInvoiceFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("invoice-%d.pdf", b.ID), nil
}

// invoiceBlock is one self-measuring section of the document.
type invoiceBlock interface {
	height(pdf *gofpdf.Fpdf) float64
	draw(pdf *gofpdf.Fpdf, y float64)
}

type blockSpan struct {
	block invoiceBlock
	page  int
	y0    float64
	y1    float64
}

// planLayout walks the block sequence with a running y cursor and starts a
// new page whenever the next block would enter the footer zone.
func planLayout(pdf *gofpdf.Fpdf, blocks []invoiceBlock) []blockSpan {
	spans := make([]blockSpan, 0, len(blocks))
	page := 1
	y := invMarginTop
	for _, b := range blocks {
		h := b.height(pdf)
		if y+h > invContentLimit && y > invMarginTop {
			page++
			y = invMarginTop
		}
		spans = append(spans, blockSpan{block: b, page: page, y0: y, y1: y + h})
		y += h
	}
	return spans
}

func buildInvoiceBlocks(b models.Booking, titles map[string]string) []invoiceBlock {
	blocks := []invoiceBlock{
		headerBlock{booking: b},
		spacerBlock{h: 10},
		billingBlock{booking: b},
		spacerBlock{h: 10},
		tableHeadBlock{},
	}
	for i, it := range b.Items {
		title := titles[it.CatalogRef]
		if title == "" {
			title = "Tour " + it.CatalogRef
		}
		blocks = append(blocks, itemRowBlock{index: i + 1, item: it, title: title})
	}
	blocks = append(blocks, spacerBlock{h: 8}, summaryBlock{booking: b})
	return blocks
}

type spacerBlock struct{ h float64 }

func (s spacerBlock) height(*gofpdf.Fpdf) float64 { return s.h }
func (s spacerBlock) draw(*gofpdf.Fpdf, float64)  {}

type headerBlock struct{ booking models.Booking }

func (h headerBlock) height(*gofpdf.Fpdf) float64 { return 38 }

func (h headerBlock) draw(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFillColor(240, 249, 255)
	pdf.Rect(0, y-invMarginTop, invPageW, 42, "F")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetXY(invMarginL, y)
	pdf.CellFormat(80, 10, "Desert Planners", "", 0, "L", false, 0, "")
	pdf.SetXY(invPageW-invMarginL-90, y)
	pdf.CellFormat(90, 10, "INVOICE", "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 65, 85)
	meta := []string{
		fmt.Sprintf("Invoice ID: %d", h.booking.ID),
		fmt.Sprintf("Payment: %s", h.booking.PaymentStatus),
		fmt.Sprintf("Date: %s", h.booking.CreatedAt.Format("2006-01-02")),
	}
	my := y + 13
	for _, line := range meta {
		pdf.SetXY(invPageW-invMarginL-90, my)
		pdf.CellFormat(90, 5, line, "", 0, "R", false, 0, "")
		my += 6
	}
}

type billingBlock struct{ booking models.Booking }

func (b billingBlock) height(*gofpdf.Fpdf) float64 { return 36 }

func (b billingBlock) draw(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(14, 165, 233)
	pdf.SetXY(invMarginL, y)
	pdf.CellFormat(80, 6, "FROM", "", 0, "L", false, 0, "")
	pdf.SetXY(invPageW-invMarginL-90, y)
	pdf.CellFormat(90, 6, "BILL TO", "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 65, 85)
	from := []string{
		"Desert Planners Tourism LLC",
		"Dubai, UAE",
		"info@desertplanners.net",
		"+971 4354 6677",
	}
	bk := b.booking
	billTo := []string{bk.CustomerName()}
	if bk.GuestEmail != "" {
		billTo = append(billTo, bk.GuestEmail)
	}
	if bk.GuestContact != "" {
		billTo = append(billTo, bk.GuestContact)
	}

	ly := y + 8
	for _, line := range from {
		pdf.SetXY(invMarginL, ly)
		pdf.CellFormat(80, 5, line, "", 0, "L", false, 0, "")
		ly += 6
	}
	ry := y + 8
	for _, line := range billTo {
		pdf.SetXY(invPageW-invMarginL-90, ry)
		pdf.CellFormat(90, 5, line, "", 0, "R", false, 0, "")
		ry += 6
	}
}

// Item table columns: #, tour title (wrapping), date, adults, children, total.
var itemCols = []float64{8, 70, 24, 27, 27, 24}

const itemTitleColW = 68.0 // title column minus inner padding

type tableHeadBlock struct{}

func (tableHeadBlock) height(*gofpdf.Fpdf) float64 { return 9 }

func (tableHeadBlock) draw(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(invMarginL, y, invContentW, 8, "F")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(30, 58, 138)

	heads := []string{"#", "Tour", "Date", "Adults", "Children", "Line Total"}
	aligns := []string{"L", "L", "L", "R", "R", "R"}
	x := invMarginL
	for i, w := range itemCols {
		pdf.SetXY(x, y+1.5)
		pdf.CellFormat(w, 5, heads[i], "", 0, aligns[i], false, 0, "")
		x += w
	}
}

type itemRowBlock struct {
	index int
	item  models.BookingItem
	title string
}

// height measures the wrapped title at the fixed column width so long titles
// never overlap the next row.
func (r itemRowBlock) height(pdf *gofpdf.Fpdf) float64 {
	pdf.SetFont("Helvetica", "", 9)
	lines := pdf.SplitText(r.title, itemTitleColW)
	n := len(lines)
	if n < 1 {
		n = 1
	}
	return float64(n)*invRowLineH + invRowPad
}

func (r itemRowBlock) draw(pdf *gofpdf.Fpdf, y float64) {
	h := r.height(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(15, 23, 42)

	top := y + invRowPad/2
	x := invMarginL
	pdf.SetXY(x, top)
	pdf.CellFormat(itemCols[0], invRowLineH, strconv.Itoa(r.index), "", 0, "L", false, 0, "")
	x += itemCols[0]

	for i, line := range pdf.SplitText(r.title, itemTitleColW) {
		pdf.SetXY(x, top+float64(i)*invRowLineH)
		pdf.CellFormat(itemCols[1], invRowLineH, line, "", 0, "L", false, 0, "")
	}
	x += itemCols[1]

	cells := []struct {
		text  string
		align string
	}{
		{r.item.Date, "L"},
		{fmt.Sprintf("%d x %s", r.item.AdultCount, utils.FormatMoney(r.item.AdultPrice)), "R"},
		{fmt.Sprintf("%d x %s", r.item.ChildCount, utils.FormatMoney(r.item.ChildPrice)), "R"},
		{utils.FormatMoney(r.item.LineTotal), "R"},
	}
	for i, c := range cells {
		w := itemCols[i+2]
		pdf.SetXY(x, top)
		pdf.CellFormat(w, invRowLineH, c.text, "", 0, c.align, false, 0, "")
		x += w
	}

	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(invMarginL, y+h, invMarginL+invContentW, y+h)
}

type summaryBlock struct{ booking models.Booking }

func (summaryBlock) height(*gofpdf.Fpdf) float64 { return 40 }

func (s summaryBlock) draw(pdf *gofpdf.Fpdf, y float64) {
	b := s.booking
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(213, 222, 233)
	pdf.Rect(invMarginL, y, invContentW, 38, "FD")

	labelX := invMarginL + 6.0
	valueW := invContentW - 12.0

	rows := []struct {
		label string
		value string
	}{
		{"Subtotal", utils.FormatAED(b.Subtotal)},
		{fmt.Sprintf("Transaction Fee (%.2f%%)", b.FeeRate*100), utils.FormatAED(b.TransactionFee)},
	}
	ry := y + 5
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 58, 138)
		pdf.SetXY(labelX, ry)
		pdf.CellFormat(80, 5, row.label, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(15, 23, 42)
		pdf.SetXY(labelX, ry)
		pdf.CellFormat(valueW, 5, row.value, "", 0, "R", false, 0, "")
		ry += 8
	}

	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(labelX, ry, invMarginL+invContentW-6, ry)
	ry += 4

	// Grand total pill, visually distinguished from the fee rows.
	pillW := 70.0
	pillX := invMarginL + invContentW - 6 - pillW
	pdf.SetFillColor(224, 242, 254)
	pdf.RoundedRect(pillX, ry-1, pillW, 9, 2, "1234", "F")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetXY(labelX, ry)
	pdf.CellFormat(60, 7, "Grand Total", "", 0, "L", false, 0, "")
	pdf.SetTextColor(3, 105, 161)
	pdf.SetXY(pillX, ry)
	pdf.CellFormat(pillW-4, 7, utils.FormatAED(b.TotalPrice), "", 0, "R", false, 0, "")
}

// drawInvoiceFooter pins the disclaimer near the bottom of the current page.
func drawInvoiceFooter(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(invMarginL, invFooterY, invMarginL+invContentW, invFooterY)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(51, 65, 85)
	pdf.SetXY(invMarginL, invFooterY+5)
	pdf.CellFormat(invContentW, 5, "Thank you for choosing Desert Planners Tourism", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetXY(invMarginL, invFooterY+11)
	pdf.CellFormat(invContentW, 5, "This invoice is auto-generated and does not require a signature.", "", 0, "C", false, 0, "")
}
