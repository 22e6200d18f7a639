package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// RenderReport writes the human readable report
func RenderReport(w io.Writer, report models.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyzing comments for user: %s\n\n", report.User)

	header := []string{"PR"}
	for _, c := range report.Categories {
		header = append(header, c.Label())
	}
	header = append(header, "Total", "URL")

	rows := make([][]string, 0, len(report.PullRequests))
	for _, pr := range report.PullRequests {
		row := []string{pr.Target.String()}
		for _, c := range report.Categories {
			row = append(row, strconv.Itoa(pr.Counts[c]))
		}
		row = append(row, strconv.Itoa(pr.Total()), pr.Target.HTMLURL(report.Host))
		rows = append(rows, row)
	}
	writeTable(&b, header, rows)

	b.WriteString("\n=== SUMMARY ===\n")
	fmt.Fprintf(&b, "Total comments across all PRs: %d\n", report.Subtotal)
	if report.Additional > 0 {
		fmt.Fprintf(&b, "Additional comments: %d\n", report.Additional)
		fmt.Fprintf(&b, "Total comments (including additional): %d\n", report.TotalComments)
	}
	fmt.Fprintf(&b, "Total time: %d minutes\n", report.Minutes)
	if report.HasRatio() {
		fmt.Fprintf(&b, "Time per comment: %.2f minutes\n", *report.MinutesPerComment)
	} else {
		b.WriteString("No comments found for the authenticated user.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// PadRight pads str with spaces to width display columns
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// writeTable pads every column but the last to its widest cell
func writeTable(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range append([][]string{header}, rows...) {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = PadRight(cell, widths[i])
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}
}
