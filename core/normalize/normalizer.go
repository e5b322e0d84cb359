// Package normalize implements the Normalizer interface.
// It renders a detail cell's inner HTML through html-to-markdown so that
// line breaks and list items keep their separation once whitespace is
// collapsed, then unwraps the bold markers the site never shows.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// strong matches a bold span rendered with the converter's delimiter.
var strong = regexp.MustCompile(`\*\*(.+?)\*\*`)

// MarkdownNormalizer converts HTML cells to text using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer. Escaping is disabled so cell text keeps
// its literal backslashes and underscores.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeDisabled),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithListEndComment(false),
			),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts a cell's inner HTML into one line of text.
// List items are joined with "; ".
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	var parts []string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			parts = append(parts, strong.ReplaceAllString(line, "$1"))
		}
	}
	return strings.Join(parts, "; "), nil
}
