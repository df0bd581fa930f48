// Package dates normalizes date columns of parcel tables.
package dates

import (
	"fmt"
	"strings"
	"time"

	"parcels/internal/frame"
)

// MonthColumn is the column ModDate rewrites.
const MonthColumn = "month"

// ModDate parses the "month" column as YYYY-MM-DD dates in place; values
// that do not parse become nil. The column argument is not consulted:
// "month" is always the target. f is returned for chaining.
func ModDate(f *frame.Frame, column string) (*frame.Frame, error) {
	if !f.Has(MonthColumn) {
		return nil, fmt.Errorf("mod date: %w: %s", frame.ErrMissingColumn, MonthColumn)
	}
	if err := f.Mutate(MonthColumn, func(r frame.Row) (frame.Value, error) {
		return parse(r[MonthColumn]), nil
	}); err != nil {
		return nil, err
	}
	return f, nil
}

func parse(v frame.Value) frame.Value {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if d, err := time.Parse(frame.DateLayout, strings.TrimSpace(t)); err == nil {
			return d
		}
	}
	return nil
}
