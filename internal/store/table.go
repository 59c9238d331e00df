// Package store keeps the ledger entities of one simulation run in memory.
package store

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidID   = errors.New("invalid id")
	ErrDuplicateID = errors.New("duplicate id")
	ErrNotFound    = errors.New("record not found")
)

// Table is an id-keyed collection iterated in ascending id order.
type Table[T any] struct {
	rows  map[int]T
	ids   []int
	maxID int
}

func newTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int]T)}
}

// NextID is one past the highest id seen.
func (t *Table[T]) NextID() int {
	return t.maxID + 1
}

func (t *Table[T]) insert(id int, row T) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	t.rows[id] = row
	if id > t.maxID {
		t.maxID = id
		t.ids = append(t.ids, id)
	} else {
		i := sort.SearchInts(t.ids, id)
		t.ids = append(t.ids, 0)
		copy(t.ids[i+1:], t.ids[i:])
		t.ids[i] = id
	}
	return nil
}

func (t *Table[T]) update(id int, row T) {
	t.rows[id] = row
}

// Get returns the row stored under id.
func (t *Table[T]) Get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *Table[T]) Len() int {
	return len(t.ids)
}

// IDs returns the ids in ascending order.
func (t *Table[T]) IDs() []int {
	return append([]int(nil), t.ids...)
}

// Each visits rows in ascending id order.
func (t *Table[T]) Each(fn func(id int, row T)) {
	for _, id := range t.ids {
		fn(id, t.rows[id])
	}
}

// Rows returns the rows in ascending id order.
func (t *Table[T]) Rows() []T {
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.rows[id])
	}
	return out
}
