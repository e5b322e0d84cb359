package render

import (
	"fmt"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// LinkRenderer formats the index page's list item for a record.
type LinkRenderer struct {
	Page   string // detail page, e.g. "plant-details.html"
	Indent string // prefix matching the index page's list nesting
}

// NewLinkRenderer creates a LinkRenderer linking to page.
func NewLinkRenderer(page, indent string) *LinkRenderer {
	return &LinkRenderer{Page: page, Indent: indent}
}

// Line returns the <li> link for rec (no newline). Names are written as-is;
// the site's names carry apostrophes but no markup.
func (r *LinkRenderer) Line(rec *core.Record) string {
	return fmt.Sprintf(`%s<li><a href="%s?name=%s">%s</a></li>`,
		r.Indent, r.Page, rec.Identity.Slug, rec.DisplayName())
}
