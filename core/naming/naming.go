// Package naming splits full plant names into scientific and common parts
// and derives the URL slug used for detail pages and image files.
package naming

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// Order says which part of "A (B)" is the scientific name.
type Order int

const (
	// ScientificFirst reads "Scientific Name (Common Name)".
	ScientificFirst Order = iota
	// CommonFirst reads "Common Name (Scientific Name)".
	CommonFirst
)

// ParseOrder maps a config value to an Order. Unknown values fall back to def.
func ParseOrder(s string, def Order) Order {
	switch s {
	case "scientific-first":
		return ScientificFirst
	case "common-first":
		return CommonFirst
	default:
		return def
	}
}

var (
	parenSplit = regexp.MustCompile(`[()]`)
	nonSlug    = regexp.MustCompile(`[^a-z ]+`)
)

// Parse splits a full name into a PlantIdentity. ok is false when the name
// does not hold exactly one parenthetical group; the second part is then
// left empty and the caller should report the shape.
func Parse(full string, order Order) (id core.PlantIdentity, ok bool) {
	segments := parenSplit.Split(full, -1)
	first := Collapse(segments[0])
	ok = len(segments) == 3

	second := ""
	if ok {
		second = Collapse(segments[1])
	}

	if order == CommonFirst {
		id.CommonName, id.ScientificName = first, second
	} else {
		id.ScientificName, id.CommonName = first, second
	}
	id.Slug = Slug(id.ScientificName)
	return id, ok
}

// Collapse trims s and replaces every run of whitespace with one space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Slug derives a lowercase, hyphenated identifier from a scientific name.
// Anything from the first ';' on is dropped (image titles carry extra
// descriptors there), then every character other than a-z and space is
// removed and spaces become hyphens. Hyphens already in the name are dropped
// too, so "Pow-Wow" becomes "powwow" as on the site.
func Slug(name string) string {
	s := strings.ToLower(name)
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	s = nonSlug.ReplaceAllString(s, "")
	if !strings.ContainsFunc(s, isLower) {
		return ""
	}
	return strings.ReplaceAll(s, " ", "-")
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// FirstWord returns the first whitespace-separated word of s.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
