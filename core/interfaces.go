// Package core defines the pipeline types and interfaces for PlantPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotPlantPage marks a document that is not a plant record (an index page,
// an empty file). The driver skips it without emitting a row.
var ErrNotPlantPage = errors.New("not a plant page")

// Kind identifies the input document format.
type Kind string

const (
	KindHTML       Kind = "html"
	KindText       Kind = "text"
	KindLegacyText Kind = "legacy-text"
)

// Source holds the raw bytes of one input document.
type Source struct {
	Path string
	Kind Kind
	Data []byte
}

// PlantIdentity is the name triple derived from a full plant name.
type PlantIdentity struct {
	ScientificName string `json:"scientific_name" yaml:"scientific_name"`
	CommonName     string `json:"common_name" yaml:"common_name"`
	Slug           string `json:"slug" yaml:"slug"`
}

// DiagnosticKind distinguishes plain warnings from rename commands.
type DiagnosticKind int

const (
	Warning DiagnosticKind = iota
	Rename
)

// Diagnostic is a recoverable data anomaly found while extracting a record.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	From    string // Rename only
	To      string // Rename only
}

// Warnf builds a Warning diagnostic.
func Warnf(format string, args ...any) Diagnostic {
	return Diagnostic{Kind: Warning, Message: fmt.Sprintf(format, args...)}
}

// RenameTo builds a Rename diagnostic moving an image file from src to dst.
func RenameTo(src, dst string) Diagnostic {
	return Diagnostic{Kind: Rename, From: src, To: dst}
}

// Loader reads an input document from its path.
type Loader interface {
	Load(ctx context.Context, path string) (*Source, error)
}

// Extractor turns one source document into a Record. It returns
// ErrNotPlantPage for documents that should be skipped.
type Extractor interface {
	Extract(src *Source) (*Record, error)
}

// Normalizer converts an HTML fragment (a table cell) into text.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts every Record of a run into a catalog file.
type Renderer interface {
	Render(records []*Record) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json").
	Extension() string
}
