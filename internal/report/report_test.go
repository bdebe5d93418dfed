package report

import (
	"strings"
	"testing"
	"time"

	"ogparsing/internal/models"
)

func TestRender_NoProcessorMatched(t *testing.T) {
	r := NewRunReport("https://example.com/guide.csv")

	out := r.Render()
	if !strings.Contains(out, "no processor matched") {
		t.Errorf("Expected no-match notice, got:\n%s", out)
	}
}

func TestRender_WithDocuments(t *testing.T) {
	doc := models.NewOrderGuideDocument("GP", []*models.LocationVendor{{ID: 7}})
	doc.Date = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	item := models.NewOrderGuideItem("100", "CASE")
	item.AddError(models.NewError(models.ErrorItemNotFound, "missing"))
	doc.Items = append(doc.Items, item)
	doc.AddError(models.NewError(models.ErrorWrongStringFormat, "bad row"))

	r := NewRunReport("https://example.com/guide.csv")
	r.AddDocuments("GP", []*models.OrderGuideDocument{doc})

	out := r.Render()

	for _, want := range []string{
		"Processor: GP",
		"2025-04-01",
		"ITEM_NOT_FOUND",
		"WRONG_STRING_FORMAT",
		doc.ID.String(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestErrorsByKind(t *testing.T) {
	doc := models.NewOrderGuideDocument("PU", nil)
	doc.AddError(models.NewError(models.ErrorWrongStringFormat, "bad"))

	item := models.NewOrderGuideItem("100", "CASE")
	item.AddError(models.NewError(models.ErrorItemNotFound, "missing"))
	item.AddError(models.NewError(models.ErrorPriceChangeExceeded, "price jump"))
	doc.Items = append(doc.Items, item)

	r := NewRunReport("file")
	r.AddDocuments("PU", []*models.OrderGuideDocument{doc})

	counts := r.ErrorsByKind()
	if counts[models.ErrorWrongStringFormat] != 1 ||
		counts[models.ErrorItemNotFound] != 1 ||
		counts[models.ErrorPriceChangeExceeded] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}

	if r.ItemCount() != 1 {
		t.Errorf("Expected 1 item, got %d", r.ItemCount())
	}
}

func TestRenderTable_Alignment(t *testing.T) {
	rows := [][]string{
		{"Kind", "Count"},
		{"ITEM_NOT_FOUND", "2"},
	}

	out := renderTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines (header, separator, row), got %d", len(lines))
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			t.Errorf("Line %d width = %d, want %d", i, len(line), width)
		}
	}
}
