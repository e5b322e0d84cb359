// Package inputs — ordered queue with path deduplication.
// Maintains a seen set so the same file is converted once per run.
package inputs

import "path/filepath"

// Queue is a FIFO of input paths with deduplication.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a path if an equivalent path hasn't been seen before.
// It reports whether the path was added.
func (q *Queue) Add(path string) bool {
	key := filepath.Clean(path)
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, path)
	return true
}

// HasNext returns true if there are unprocessed paths.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed path and advances the pointer.
func (q *Queue) Next() string {
	p := q.items[q.idx]
	q.idx++
	return p
}

// Len returns the number of unique paths queued.
func (q *Queue) Len() int {
	return len(q.items)
}
