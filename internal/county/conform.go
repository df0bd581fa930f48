package county

import (
	"fmt"

	"parcels/internal/frame"
	"parcels/internal/types"
)

// Conform projects a county table onto types.CanonicalColumns. sources maps
// a canonical column to the county column holding it; canonical columns
// without an entry are filled with nil. Every other county column is
// dropped.
func Conform(f *frame.Frame, sources map[string]string) (*frame.Frame, error) {
	for canon, src := range sources {
		if !f.Has(src) {
			return nil, fmt.Errorf("conform %s: %w: %s", canon, frame.ErrMissingColumn, src)
		}
	}
	out := frame.New(types.CanonicalColumns...)
	for _, r := range f.Rows() {
		row := make(frame.Row, len(types.CanonicalColumns))
		for _, canon := range types.CanonicalColumns {
			if src, ok := sources[canon]; ok {
				row[canon] = r[src]
			}
		}
		out.Append(row)
	}
	return out, nil
}

// identity maps each canonical column to itself, except those listed in
// missing and those overridden.
func identity(overrides map[string]string, missing ...string) map[string]string {
	skip := setOf(missing...)
	m := make(map[string]string, len(types.CanonicalColumns))
	for _, c := range types.CanonicalColumns {
		if _, ok := skip[c]; ok {
			continue
		}
		m[c] = c
	}
	for canon, src := range overrides {
		m[canon] = src
	}
	return m
}
