package services

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/phpdave11/gofpdf"
)

func invoiceFixture(itemCount int) models.Booking {
	b := models.Booking{
		ID:             5,
		GuestName:      "Fatima Noor",
		GuestEmail:     "fatima@example.com",
		GuestContact:   "+971501234567",
		Subtotal:       4380,
		FeeRate:        0.0375,
		TransactionFee: 164.25,
		TotalPrice:     4544.25,
		Status:         models.BookingConfirmed,
		PaymentStatus:  models.PaymentPaid,
		CreatedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	for i := 0; i < itemCount; i++ {
		b.Items = append(b.Items, models.BookingItem{
			CatalogRef: fmt.Sprintf("%d", i+1),
			Date:       "2026-09-15",
			AdultCount: 2,
			ChildCount: 1,
			AdultPrice: 500,
			ChildPrice: 200,
			LineTotal:  1200,
			Position:   i,
		})
	}
	return b
}

func fixedLoader(b models.Booking, titles map[string]string) func(int64) (models.Booking, map[string]string, error) {
	return func(int64) (models.Booking, map[string]string, error) {
		return b, titles, nil
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	svc := InvoiceService{Loader: fixedLoader(invoiceFixture(3), map[string]string{"1": "Desert Safari"})}

	pdf, filename, err := svc.GenerateInvoice(5)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if filename != "invoice-5.pdf" {
		t.Fatalf("filename = %q", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:8])
	}
}

func TestGenerateInvoiceNotFound(t *testing.T) {
	svc := InvoiceService{Loader: func(int64) (models.Booking, map[string]string, error) {
		return models.Booking{}, nil, domain.NotFoundError{Resource: "booking"}
	}}
	if _, _, err := svc.GenerateInvoice(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlanLayoutSpansDisjoint(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	blocks := buildInvoiceBlocks(invoiceFixture(40), nil)
	spans := planLayout(pdf, blocks)

	if len(spans) != len(blocks) {
		t.Fatalf("spans = %d, blocks = %d", len(spans), len(blocks))
	}

	var prev blockSpan
	for i, sp := range spans {
		if sp.y1 < sp.y0 {
			t.Fatalf("span %d inverted: %+v", i, sp)
		}
		if sp.y1 > invContentLimit {
			t.Fatalf("span %d enters the footer zone: y1=%v limit=%v", i, sp.y1, invContentLimit)
		}
		if i > 0 {
			if sp.page < prev.page {
				t.Fatalf("span %d page went backwards", i)
			}
			if sp.page == prev.page && sp.y0 < prev.y1 {
				t.Fatalf("span %d overlaps previous: %v < %v", i, sp.y0, prev.y1)
			}
			if sp.page > prev.page && sp.y0 != invMarginTop {
				t.Fatalf("span %d does not restart at top margin: %v", i, sp.y0)
			}
		}
		prev = sp
	}

	if spans[len(spans)-1].page < 2 {
		t.Fatal("40 items should overflow onto a second page")
	}
}

func TestPlanLayoutSinglePageStaysOnOne(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	spans := planLayout(pdf, buildInvoiceBlocks(invoiceFixture(2), nil))
	for _, sp := range spans {
		if sp.page != 1 {
			t.Fatalf("small invoice paginated: %+v", sp)
		}
	}
}

func TestItemRowHeightCoversWrappedTitle(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	long := strings.Repeat("Premium Evening Desert Safari with BBQ Dinner ", 4)
	row := itemRowBlock{index: 1, item: models.BookingItem{}, title: long}

	h := row.height(pdf)
	pdf.SetFont("Helvetica", "", 9)
	lines := len(pdf.SplitText(long, itemTitleColW))
	if lines < 2 {
		t.Fatalf("fixture title did not wrap (%d lines)", lines)
	}
	if want := float64(lines)*invRowLineH + invRowPad; h != want {
		t.Fatalf("row height = %v, want %v", h, want)
	}

	short := itemRowBlock{index: 2, title: "Safari"}
	if short.height(pdf) >= h {
		t.Fatal("short title row should be smaller than wrapped row")
	}
}

func TestInvoiceBlocksPreserveItemOrder(t *testing.T) {
	b := invoiceFixture(5)
	blocks := buildInvoiceBlocks(b, nil)

	var refs []string
	for _, blk := range blocks {
		if row, ok := blk.(itemRowBlock); ok {
			refs = append(refs, row.item.CatalogRef)
		}
	}
	if len(refs) != 5 {
		t.Fatalf("item rows = %d, want 5", len(refs))
	}
	for i, ref := range refs {
		if want := fmt.Sprintf("%d", i+1); ref != want {
			t.Fatalf("row %d has ref %q, want %q", i, ref, want)
		}
	}
}

func TestInvoiceBlocksTitleFallback(t *testing.T) {
	blocks := buildInvoiceBlocks(invoiceFixture(1), map[string]string{})
	for _, blk := range blocks {
		if row, ok := blk.(itemRowBlock); ok {
			if row.title != "Tour 1" {
				t.Fatalf("fallback title = %q, want %q", row.title, "Tour 1")
			}
			return
		}
	}
	t.Fatal("no item row found")
}
