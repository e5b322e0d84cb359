// Package render provides output renderers for the PlantPipe pipeline.
// Per-record lines (links) are written as records arrive; the catalog
// renderers here format every record of a run into one file.
// This file implements the Markdown catalog.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/plantpipe/core"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// MarkdownRenderer writes one section per plant with a feature table.
// Features without details are left out, as on the detail page.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown catalog.
func (r *MarkdownRenderer) Render(records []*core.Record) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Plant Catalog\n")

	for _, rec := range records {
		b.WriteString("\n## " + rec.DisplayName() + "\n\n")

		var rows []string
		for i, label := range rec.Labels {
			if i < len(rec.Fields) && rec.Fields[i] != "" {
				rows = append(rows, "| "+cellEscaper.Replace(label)+" | "+cellEscaper.Replace(rec.Fields[i])+" |")
			}
		}
		if len(rows) > 0 {
			b.WriteString("| Feature | Detail |\n|---|---|\n")
			b.WriteString(strings.Join(rows, "\n"))
			b.WriteString("\n")
		}
		if len(rec.Tail) > 0 {
			b.WriteString("\nImages: " + strings.Join(rec.Tail, ", ") + "\n")
		}
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
