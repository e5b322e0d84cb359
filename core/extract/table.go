// Package extract implements the Extractor interface for each input kind.
//
// TableExtractor reads a plant detail page: the <h1> holds the full name,
// the second cell of each table row holds a detail, and every <img> is
// checked against the standard title and file name.
package extract

import (
	"bytes"
	"fmt"
	"path"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/plantpipe/core"
	"github.com/gaurav-prasanna/plantpipe/core/naming"
)

var (
	tableSel   = cascadia.MustCompile("table")
	cellSel    = cascadia.MustCompile("td")
	headingSel = cascadia.MustCompile("h1")
	bodySel    = cascadia.MustCompile("tbody")
	rowSel     = cascadia.MustCompile("tr")
	imageSel   = cascadia.MustCompile("img")
)

// TableExtractor extracts a Record from an HTML plant detail page.
type TableExtractor struct {
	// Order of the parts in the page heading.
	Order naming.Order
	// ImageDir and ImageExt build the standard image path: ImageDir/slug+ImageExt.
	ImageDir string
	ImageExt string
	// Cells, if set, converts each detail cell's inner HTML to text.
	// Otherwise the cell's text content is used.
	Cells core.Normalizer
}

// NewTableExtractor creates a TableExtractor for "Common (Scientific)"
// headings and images/<slug>.jpg files.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{
		Order:    naming.CommonFirst,
		ImageDir: "images",
		ImageExt: ".jpg",
	}
}

// Extract parses src as HTML. Pages without a table cell or a heading are
// reported as core.ErrNotPlantPage.
func (e *TableExtractor) Extract(src *core.Source) (*core.Record, error) {
	root, err := html.Parse(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	if doc.FindMatcher(tableSel).Length() == 0 || doc.FindMatcher(cellSel).Length() == 0 {
		return nil, core.ErrNotPlantPage
	}
	heading := doc.FindMatcher(headingSel).First()
	if heading.Length() == 0 {
		return nil, fmt.Errorf("no <h1> heading: %w", core.ErrNotPlantPage)
	}

	rec := &core.Record{Path: src.Path}
	full := heading.Text()
	id, ok := naming.Parse(full, e.Order)
	if !ok {
		rec.Warn("Unexpected full name shape: %s", naming.Collapse(full))
	}
	rec.Identity = id

	if err := e.details(doc, rec); err != nil {
		return nil, err
	}
	e.images(doc, rec)
	return rec, nil
}

// details collects the label and detail cells of every row in the first
// table body.
func (e *TableExtractor) details(doc *goquery.Document, rec *core.Record) error {
	var cellErr error
	rows := doc.FindMatcher(bodySel).First().FindMatcher(rowSel)
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.FindMatcher(cellSel)
		if cells.Length() < 2 {
			rec.Warn("Row %d has %d cell(s), expected 2", i+1, cells.Length())
			return true
		}
		detail, err := e.cellText(cells.Eq(1))
		if err != nil {
			cellErr = fmt.Errorf("row %d: %w", i+1, err)
			return false
		}
		rec.Labels = append(rec.Labels, naming.Collapse(cells.Eq(0).Text()))
		rec.Fields = append(rec.Fields, detail)
		return true
	})
	return cellErr
}

func (e *TableExtractor) cellText(cell *goquery.Selection) (string, error) {
	if e.Cells == nil {
		return naming.Collapse(cell.Text()), nil
	}
	inner, err := cell.Html()
	if err != nil {
		return "", fmt.Errorf("serializing cell: %w", err)
	}
	text, err := e.Cells.Normalize(inner)
	if err != nil {
		return "", err
	}
	return naming.Collapse(text), nil
}

// images checks every <img> against the page identity. A non-standard title
// is recorded in the record tail and its source is checked against the
// path the title implies; otherwise the source must be the standard path.
func (e *TableExtractor) images(doc *goquery.Document, rec *core.Record) {
	id := rec.Identity
	stdTitle := id.CommonName + " (" + id.ScientificName + ")"
	stdSrc := e.imagePath(id.Slug)

	doc.FindMatcher(imageSel).Each(func(_ int, img *goquery.Selection) {
		title, _ := img.Attr("title")
		src, _ := img.Attr("src")

		if title != stdTitle {
			rec.Warn("Unexpected image title: %s", title)
			alt, ok := naming.Parse(title, naming.CommonFirst)
			if !ok {
				rec.Warn("Unexpected full name shape: %s", title)
			}
			rec.Tail = append(rec.Tail, alt.ScientificName)
			if altSrc := e.imagePath(alt.Slug); src != altSrc {
				rec.Diagnostics = append(rec.Diagnostics, core.RenameTo(src, altSrc))
			}
			return
		}
		if src != stdSrc {
			rec.Diagnostics = append(rec.Diagnostics, core.RenameTo(src, stdSrc))
		}
	})
}

func (e *TableExtractor) imagePath(slug string) string {
	return path.Join(e.ImageDir, slug+e.ImageExt)
}
