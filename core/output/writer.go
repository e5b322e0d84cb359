// Package output handles the destinations of a PlantPipe run.
// Streams are the per-record outputs (CSV rows, link lines, diagnostics),
// opened once and appended to across all inputs. Writer places whole
// catalog files (JSON, YAML, Markdown, PDF) written at the end of a run.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// Options names the stream destinations. An empty path means the default
// stream: stdout for CSV and links; for diagnostics, stdout for HTML
// inputs (a rename script) and stderr for text inputs.
type Options struct {
	CSVPath   string
	LinksPath string
	DiagPath  string

	Stdout io.Writer // default os.Stdout
	Stderr io.Writer // default os.Stderr
}

// Streams are the open per-record outputs.
type Streams struct {
	CSV   io.Writer
	Links io.Writer

	diag   io.Writer
	stdout io.Writer
	stderr io.Writer
	files  []*os.File
}

// Open creates (truncating) every named file. Options naming the same
// path share one handle so their lines interleave instead of clobbering.
func Open(opts Options) (*Streams, error) {
	s := &Streams{stdout: opts.Stdout, stderr: opts.Stderr}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}

	byPath := make(map[string]*os.File)
	open := func(path string) (io.Writer, error) {
		if path == "" {
			return nil, nil
		}
		key := filepath.Clean(path)
		if f, ok := byPath[key]; ok {
			return f, nil
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		byPath[key] = f
		s.files = append(s.files, f)
		return f, nil
	}

	var err error
	if s.CSV, err = open(opts.CSVPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.Links, err = open(opts.LinksPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.diag, err = open(opts.DiagPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.CSV == nil {
		s.CSV = s.stdout
	}
	if s.Links == nil {
		s.Links = s.stdout
	}
	return s, nil
}

// Diag returns the diagnostics stream for records of the given kind.
func (s *Streams) Diag(kind core.Kind) io.Writer {
	switch {
	case s.diag != nil:
		return s.diag
	case kind == core.KindHTML:
		return s.stdout
	default:
		return s.stderr
	}
}

// Close closes every file opened by Open.
func (s *Streams) Close() error {
	var errs []error
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", f.Name(), err))
		}
	}
	s.files = nil
	return errors.Join(errs...)
}

// Writer writes catalog files to disk.
type Writer struct {
	OutputDir string
}

// New creates the catalog Writer for --output_dir. Relative catalog paths
// resolve against dir, or against the working directory when dir is empty.
func New(dir string) (*Writer, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving catalog directory: %w", err)
		}
		return &Writer{OutputDir: wd}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory %s: %w", dir, err)
	}
	return &Writer{OutputDir: dir}, nil
}

// WriteFile writes data to name, adding ext when name has no extension.
// It returns the path written.
func (w *Writer) WriteFile(name string, data []byte, ext string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.OutputDir, path)
	}
	if filepath.Ext(path) == "" {
		path += ext
	}

	// Ensure parent directories exist.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
