package core

import "strings"

// Column names shared by every catalog output. The site's scripts look
// records up by these keys.
const (
	ColumnScientificName = "Scientific Name"
	ColumnCommonName     = "Common Name"
	ColumnImageTitles    = "Image Titles"
)

// Record is the result of extracting one plant document.
type Record struct {
	Path     string
	Identity PlantIdentity
	// Labels run parallel to Fields and name each detail column.
	Labels []string
	Fields []string
	// Tail is the trailing variable-length list: image names for text
	// records, non-standard image titles for HTML pages.
	Tail        []string
	Diagnostics []Diagnostic
}

// Warn appends a Warning diagnostic to the record.
func (r *Record) Warn(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Warnf(format, args...))
}

// Row serializes the record as a pipe-delimited CSV line (no newline).
// Embedded '|' characters are not escaped.
func (r *Record) Row() string {
	parts := make([]string, 0, len(r.Fields)+3)
	parts = append(parts, r.Identity.ScientificName, r.Identity.CommonName)
	parts = append(parts, r.Fields...)
	parts = append(parts, strings.Join(r.Tail, ":"))
	return strings.Join(parts, "|")
}

// Header returns the column names matching Row.
func (r *Record) Header() []string {
	cols := make([]string, 0, len(r.Labels)+3)
	cols = append(cols, ColumnScientificName, ColumnCommonName)
	cols = append(cols, r.Labels...)
	return append(cols, ColumnImageTitles)
}

// Values returns the column values matching Header.
func (r *Record) Values() []string {
	vals := make([]string, 0, len(r.Fields)+3)
	vals = append(vals, r.Identity.ScientificName, r.Identity.CommonName)
	for i := range r.Labels {
		v := ""
		if i < len(r.Fields) {
			v = r.Fields[i]
		}
		vals = append(vals, v)
	}
	return append(vals, strings.Join(r.Tail, ":"))
}

// DisplayName renders "Scientific (Common)", or whichever part is present.
func (r *Record) DisplayName() string {
	sci, com := r.Identity.ScientificName, r.Identity.CommonName
	switch {
	case sci == "":
		return com
	case com == "":
		return sci
	default:
		return sci + " (" + com + ")"
	}
}

// String renders a diagnostic as one line of the diagnostics stream.
// Warnings are shell comments so the stream stays a runnable script.
func (d Diagnostic) String() string {
	if d.Kind == Rename {
		return "git mv " + d.From + " " + d.To
	}
	return "# " + d.Message
}
