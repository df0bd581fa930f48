// Package frame holds the in-memory parcel tables the county cleaners work
// on: ordered columns, rows of loosely typed cells, and delimited text I/O.
package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when an operation names a column the
	// frame does not have.
	ErrMissingColumn = errors.New("missing column")
	// ErrTypeConversion is returned when a cell cannot be coerced to the
	// requested type.
	ErrTypeConversion = errors.New("type conversion")
)

// Value is a single cell. nil marks a missing / unknown value.
type Value = any

// Row maps column names to cell values.
type Row map[string]Value

// Frame is an ordered, in-memory table of rows sharing one column list.
type Frame struct {
	columns []string
	rows    []Row
}

// New returns an empty frame with the given columns.
func New(columns ...string) *Frame {
	return &Frame{columns: append([]string(nil), columns...)}
}

// FromRows builds a frame from columns and rows. Cells absent from a row
// read as nil.
func FromRows(columns []string, rows []Row) *Frame {
	f := New(columns...)
	for _, r := range rows {
		f.Append(r)
	}
	return f
}

// Append adds a row, keeping only the frame's columns.
func (f *Frame) Append(r Row) {
	row := make(Row, len(f.columns))
	for _, c := range f.columns {
		row[c] = r[c]
	}
	f.rows = append(f.rows, row)
}

// Clone returns a copy of f whose rows can be changed without touching f.
func (f *Frame) Clone() *Frame {
	return FromRows(f.columns, f.rows)
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Rows returns the rows. Callers may mutate cell values but not the slice.
func (f *Frame) Rows() []Row { return f.rows }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Has reports whether the frame has the named column.
func (f *Frame) Has(name string) bool {
	return f.index(name) >= 0
}

func (f *Frame) index(name string) int {
	for i, c := range f.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column in row order.
func (f *Frame) Column(name string) ([]Value, error) {
	if !f.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	out := make([]Value, len(f.rows))
	for i, r := range f.rows {
		out[i] = r[name]
	}
	return out, nil
}

// Select keeps only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	for _, n := range names {
		if !f.Has(n) {
			return nil, fmt.Errorf("select: %w: %s", ErrMissingColumn, n)
		}
	}
	out := New(names...)
	out.rows = make([]Row, 0, len(f.rows))
	for _, r := range f.rows {
		out.Append(r)
	}
	return out, nil
}

// Drop removes the named columns in place. Names the frame does not have
// are an error.
func (f *Frame) Drop(names ...string) error {
	for _, n := range names {
		i := f.index(n)
		if i < 0 {
			return fmt.Errorf("drop: %w: %s", ErrMissingColumn, n)
		}
		f.columns = append(f.columns[:i], f.columns[i+1:]...)
		for _, r := range f.rows {
			delete(r, n)
		}
	}
	return nil
}

// Rename renames columns in place according to mapping (old -> new).
func (f *Frame) Rename(mapping map[string]string) error {
	for from := range mapping {
		if !f.Has(from) {
			return fmt.Errorf("rename: %w: %s", ErrMissingColumn, from)
		}
	}
	f.RenameColumns(func(name string) string {
		if to, ok := mapping[name]; ok {
			return to
		}
		return name
	})
	return nil
}

// RenameColumns applies fn to every column name in place.
func (f *Frame) RenameColumns(fn func(string) string) {
	renamed := make(map[string]string, len(f.columns))
	for i, c := range f.columns {
		n := fn(c)
		f.columns[i] = n
		if n != c {
			renamed[c] = n
		}
	}
	if len(renamed) == 0 {
		return
	}
	for i, r := range f.rows {
		row := make(Row, len(r))
		for k, v := range r {
			if n, ok := renamed[k]; ok {
				k = n
			}
			row[k] = v
		}
		f.rows[i] = row
	}
}

// Filter keeps the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	f.rows = kept
}

// Set assigns a constant to the named column on every row, adding the
// column when absent.
func (f *Frame) Set(name string, v Value) {
	_ = f.Mutate(name, func(Row) (Value, error) { return v, nil })
}

// Mutate computes the named column from each row, adding the column when
// absent. The first error aborts the whole operation.
func (f *Frame) Mutate(name string, fn func(Row) (Value, error)) error {
	values := make([]Value, len(f.rows))
	for i, r := range f.rows {
		v, err := fn(r)
		if err != nil {
			return fmt.Errorf("column %s row %d: %w", name, i, err)
		}
		values[i] = v
	}
	if !f.Has(name) {
		f.columns = append(f.columns, name)
	}
	for i, r := range f.rows {
		r[name] = values[i]
	}
	return nil
}

// SetColumn assigns values to the named column row by row, adding the
// column when absent.
func (f *Frame) SetColumn(name string, values []Value) error {
	if len(values) != len(f.rows) {
		return fmt.Errorf("set column %s: %d values for %d rows", name, len(values), len(f.rows))
	}
	if !f.Has(name) {
		f.columns = append(f.columns, name)
	}
	for i, r := range f.rows {
		r[name] = values[i]
	}
	return nil
}

// Take returns a new frame holding the rows at the given positions, in the
// order given.
func (f *Frame) Take(positions []int) (*Frame, error) {
	out := New(f.columns...)
	out.rows = make([]Row, 0, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(f.rows) {
			return nil, fmt.Errorf("take: position %d out of range [0, %d)", p, len(f.rows))
		}
		out.Append(f.rows[p])
	}
	return out, nil
}

// Concat stacks frames that share the same column list.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return New(), nil
	}
	out := New(frames[0].columns...)
	for i, fr := range frames {
		if !sameColumns(out.columns, fr.columns) {
			return nil, fmt.Errorf("concat: frame %d columns differ from frame 0", i)
		}
		out.rows = append(out.rows, fr.rows...)
	}
	return out, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
