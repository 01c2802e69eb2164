package simulator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var ErrUnknownColumn = errors.New("simulator: unknown column")

// Row is implemented by the datamodel pointer types the simulator stores.
type Row[R any] interface {
	PrimaryKey() string
	Column(name string) (any, bool)
	// Stamp fills the id and timestamps that are still zero.
	Stamp(id string, now time.Time)
	// Touch records a modification at now.
	Touch(now time.Time)
	Clone() R
}

// Placement decides where Insert puts a new row.
type Placement int

const (
	Append Placement = iota
	Prepend
)

// Table is one mutex-guarded table. Rows handed in or out are clones, so
// callers never share memory with the stored rows.
type Table[R Row[R]] struct {
	name      string
	probe     R
	placement Placement
	now       func() time.Time
	newID     func() string

	mu      sync.RWMutex
	rows    []R
	indexes map[string]map[string]int
}

func NewTable[R Row[R]](name string, probe R, placement Placement, now func() time.Time, newID func() string, indexed ...string) *Table[R] {
	t := &Table[R]{
		name:      name,
		probe:     probe,
		placement: placement,
		now:       now,
		newID:     newID,
		indexes:   make(map[string]map[string]int, len(indexed)),
	}
	for _, col := range indexed {
		t.indexes[col] = make(map[string]int)
	}
	return t
}

func (t *Table[R]) Name() string { return t.name }

func (t *Table[R]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *Table[R]) checkColumns(q Query) error {
	for _, f := range q.Filters {
		if _, ok := t.probe.Column(f.Column); !ok {
			return fmt.Errorf("%w %q on %s", ErrUnknownColumn, f.Column, t.name)
		}
	}
	if q.Order != nil {
		if _, ok := t.probe.Column(q.Order.Column); !ok {
			return fmt.Errorf("%w %q on %s", ErrUnknownColumn, q.Order.Column, t.name)
		}
	}
	return nil
}

func matches[R Row[R]](row R, filters []Eq) bool {
	for _, f := range filters {
		v, _ := row.Column(f.Column)
		if !equal(v, f.Value) {
			return false
		}
	}
	return true
}

// Select returns clones of the matching rows. Without Order the current
// storage order is kept.
func (t *Table[R]) Select(ctx context.Context, q Query) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.checkColumns(q); err != nil {
		return nil, err
	}

	t.mu.RLock()
	out := make([]R, 0, len(t.rows))
	for _, row := range t.rows {
		if matches(row, q.Filters) {
			out = append(out, row.Clone())
		}
	}
	t.mu.RUnlock()

	if q.Order != nil {
		col, desc := q.Order.Column, q.Order.Descending
		slices.SortStableFunc(out, func(a, b R) int {
			av, _ := a.Column(col)
			bv, _ := b.Column(col)
			c := compare(av, bv)
			if desc {
				return -c
			}
			return c
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// First returns the first row matching every filter.
func (t *Table[R]) First(ctx context.Context, filters ...Eq) (R, bool, error) {
	var zero R
	rows, err := t.Select(ctx, Query{Filters: filters, Limit: 1})
	if err != nil || len(rows) == 0 {
		return zero, false, err
	}
	return rows[0], true, nil
}

// Insert stores a clone of row after stamping its id and timestamps.
func (t *Table[R]) Insert(ctx context.Context, row R) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	stored := row.Clone()
	stored.Stamp(t.newID(), t.now())

	t.mu.Lock()
	if t.placement == Prepend {
		t.rows = slices.Insert(t.rows, 0, stored)
	} else {
		t.rows = append(t.rows, stored)
	}
	t.indexAdd(stored)
	t.mu.Unlock()

	return stored.Clone(), nil
}

// InsertIfAbsent inserts row unless a row matching every filter exists.
// The check and the insert happen under one lock.
func (t *Table[R]) InsertIfAbsent(ctx context.Context, row R, filters ...Eq) (R, bool, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if err := t.checkColumns(Query{Filters: filters}); err != nil {
		return zero, false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.rows {
		if matches(existing, filters) {
			return existing.Clone(), false, nil
		}
	}
	stored := row.Clone()
	stored.Stamp(t.newID(), t.now())
	if t.placement == Prepend {
		t.rows = slices.Insert(t.rows, 0, stored)
	} else {
		t.rows = append(t.rows, stored)
	}
	t.indexAdd(stored)
	return stored.Clone(), true, nil
}

// Update applies mutate to every matching row and stamps updated_at.
// No match yields an empty slice.
func (t *Table[R]) Update(ctx context.Context, eq Eq, mutate func(R)) ([]R, error) {
	return t.modify(ctx, eq, mutate, true)
}

// UpdateCounters is Update without touching updated_at, for server-side
// counters such as view counts.
func (t *Table[R]) UpdateCounters(ctx context.Context, eq Eq, mutate func(R)) ([]R, error) {
	return t.modify(ctx, eq, mutate, false)
}

func (t *Table[R]) modify(ctx context.Context, eq Eq, mutate func(R), touch bool) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.checkColumns(Query{Filters: []Eq{eq}}); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	updated := []R{}
	for _, row := range t.rows {
		if !matches(row, []Eq{eq}) {
			continue
		}
		t.indexRemove(row)
		mutate(row)
		if touch {
			row.Touch(now)
		}
		t.indexAdd(row)
		updated = append(updated, row.Clone())
	}
	return updated, nil
}

// Delete removes every matching row and returns them.
func (t *Table[R]) Delete(ctx context.Context, eq Eq) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.checkColumns(Query{Filters: []Eq{eq}}); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	deleted := []R{}
	kept := t.rows[:0]
	for _, row := range t.rows {
		if matches(row, []Eq{eq}) {
			t.indexRemove(row)
			deleted = append(deleted, row)
			continue
		}
		kept = append(kept, row)
	}
	clear(t.rows[len(kept):])
	t.rows = kept
	return deleted, nil
}

// CountBy counts rows whose column equals value. Indexed columns answer
// from the counting index.
func (t *Table[R]) CountBy(ctx context.Context, column string, value any) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.RLock()
	if idx, ok := t.indexes[column]; ok {
		n := idx[indexKey(value)]
		t.mu.RUnlock()
		return n, nil
	}
	t.mu.RUnlock()

	rows, err := t.Select(ctx, Query{Filters: []Eq{{Column: column, Value: value}}})
	return len(rows), err
}

// Load appends rows in the given order, bypassing placement. Used for
// fixtures.
func (t *Table[R]) Load(rows ...R) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for _, row := range rows {
		stored := row.Clone()
		stored.Stamp(t.newID(), now)
		t.rows = append(t.rows, stored)
		t.indexAdd(stored)
	}
}

func (t *Table[R]) indexAdd(row R) {
	for col, idx := range t.indexes {
		v, _ := row.Column(col)
		idx[indexKey(v)]++
	}
}

func (t *Table[R]) indexRemove(row R) {
	for col, idx := range t.indexes {
		v, _ := row.Column(col)
		key := indexKey(v)
		if idx[key] <= 1 {
			delete(idx, key)
			continue
		}
		idx[key]--
	}
}
