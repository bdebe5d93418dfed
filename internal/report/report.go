// Package report renders per-run summaries of processed order guide files.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"ogparsing/internal/models"
)

// RunReport accumulates the outcome of one import job.
type RunReport struct {
	FileURL   string
	Processor string
	Documents []*models.OrderGuideDocument
}

// NewRunReport starts a report for a file.
func NewRunReport(fileURL string) *RunReport {
	return &RunReport{FileURL: fileURL}
}

// AddDocuments records the processing result.
func (r *RunReport) AddDocuments(processor string, docs []*models.OrderGuideDocument) {
	r.Processor = processor
	r.Documents = append(r.Documents, docs...)
}

// ItemCount returns the total number of items across all documents.
func (r *RunReport) ItemCount() int {
	var n int
	for _, doc := range r.Documents {
		n += len(doc.Items)
	}

	return n
}

// ErrorsByKind tallies recorded errors, document and item level combined.
func (r *RunReport) ErrorsByKind() map[models.ErrorKind]int {
	counts := make(map[models.ErrorKind]int)

	for _, doc := range r.Documents {
		for _, e := range doc.Errors {
			counts[e.Kind]++
		}

		for _, item := range doc.Items {
			for _, e := range item.Errors {
				counts[e.Kind]++
			}
		}
	}

	return counts
}

// Render produces a markdown summary of the run.
func (r *RunReport) Render() string {
	var sb strings.Builder

	sb.WriteString("# Import run\n\n")
	sb.WriteString(fmt.Sprintf("File: %s\n", r.FileURL))

	if r.Processor == "" {
		sb.WriteString("Result: no processor matched\n")

		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Processor: %s\n\n", r.Processor))

	rows := [][]string{{"Document", "Date", "Location vendors", "Items", "Errors"}}
	for _, doc := range r.Documents {
		date := ""
		if !doc.Date.IsZero() {
			date = doc.Date.Format("2006-01-02")
		}

		rows = append(rows, []string{
			doc.ID.String(),
			date,
			fmt.Sprintf("%d", len(doc.LocationVendors)),
			fmt.Sprintf("%d", len(doc.Items)),
			fmt.Sprintf("%d", docErrorCount(doc)),
		})
	}

	sb.WriteString(renderTable(rows))

	if counts := r.ErrorsByKind(); len(counts) > 0 {
		sb.WriteString("\n## Errors\n\n")

		kinds := make([]string, 0, len(counts))
		for kind := range counts {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)

		errRows := [][]string{{"Kind", "Count"}}
		for _, kind := range kinds {
			errRows = append(errRows, []string{kind, fmt.Sprintf("%d", counts[models.ErrorKind(kind)])})
		}

		sb.WriteString(renderTable(errRows))
	}

	return sb.String()
}

func docErrorCount(doc *models.OrderGuideDocument) int {
	n := len(doc.Errors)
	for _, item := range doc.Items {
		n += len(item.Errors)
	}

	return n
}

// renderTable writes a markdown table with display-width aligned columns.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := len(rows[0])
	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	var sb strings.Builder

	for rIdx, row := range rows {
		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")

		// Separator after the header row
		if rIdx == 0 {
			sb.WriteString("|")

			for j := 0; j < colCount; j++ {
				sb.WriteString(" ")
				sb.WriteString(strings.Repeat("-", colWidths[j]))
				sb.WriteString(" |")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
