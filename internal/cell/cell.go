// Package cell provides single-slot, last-write-wins value cells used for
// every cross-component channel: one producer overwrites, any number of
// readers load the latest value without queueing or blocking.
package cell

import "sync/atomic"

// Cell holds the latest value of T.
type Cell[T any] struct {
	v atomic.Pointer[T]
}

// New returns a cell holding initial.
func New[T any](initial T) *Cell[T] {
	c := &Cell[T]{}
	c.Store(initial)
	return c
}

// Store overwrites the current value.
func (c *Cell[T]) Store(v T) {
	c.v.Store(&v)
}

// Load returns the current value, or the zero value if nothing was stored.
func (c *Cell[T]) Load() T {
	if p := c.v.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}
