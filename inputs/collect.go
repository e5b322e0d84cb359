// Package inputs validates and orders the files named on the command line.
// Every path is checked before any output is produced, so a typo aborts
// the run instead of leaving half-written outputs behind.
package inputs

import (
	"errors"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// ErrNoInputs is returned when no paths were given.
var ErrNoInputs = errors.New("no input files given")

// Input is one validated input file.
type Input struct {
	Path string
	Kind core.Kind
}

// Collect validates paths and returns them de-duplicated, in first-seen
// order, each tagged with its kind. kind is a core.Kind value or KindAuto.
func Collect(paths []string, kind string) ([]Input, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	queue := NewQueue()
	for _, p := range paths {
		if err := checkReadable(p); err != nil {
			return nil, err
		}
		queue.Add(p)
	}

	inputs := make([]Input, 0, queue.Len())
	for queue.HasNext() {
		p := queue.Next()
		inputs = append(inputs, Input{Path: p, Kind: KindFor(p, kind)})
	}
	return inputs, nil
}

// checkReadable rejects paths that are missing, not regular files, or
// cannot be opened for reading.
func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s is not a valid path: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s is not a readable file: %w", path, err)
	}
	return f.Close()
}
