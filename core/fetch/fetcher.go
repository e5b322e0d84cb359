// Package fetch implements the Loader interface.
// It reads input documents from the local filesystem.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// maxDocumentSize bounds a single input document.
const maxDocumentSize = 16 << 20

// FileLoader loads documents from disk.
type FileLoader struct {
	// Kind is assigned to every loaded Source.
	Kind core.Kind
}

// New creates a FileLoader for documents of the given kind.
func New(kind core.Kind) *FileLoader {
	return &FileLoader{Kind: kind}
}

// Load reads the whole file at path.
func (l *FileLoader) Load(ctx context.Context, path string) (*core.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > maxDocumentSize {
		return nil, fmt.Errorf("reading %s: file is %d bytes, limit is %d", path, info.Size(), maxDocumentSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.Source{
		Path: path,
		Kind: l.Kind,
		Data: data,
	}, nil
}
