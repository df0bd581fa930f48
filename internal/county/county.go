// Package county turns raw county assessment extracts into parcel tables
// sharing one canonical schema.
package county

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"parcels/internal/frame"
	"parcels/internal/logger"
	"parcels/internal/types"
)

// ErrUnknownCounty is returned by New for a county with no normalizer.
var ErrUnknownCounty = errors.New("unknown county")

// Normalizer converts one county's extract into a parcel table.
//
// Clean returns the county table as produced by the county's cleaning
// steps, source quirks included. Normalize conforms that table to
// types.CanonicalColumns.
type Normalizer interface {
	Name() string
	Clean(path string) (*frame.Frame, error)
	Normalize(path string) (*frame.Frame, error)
}

type options struct {
	fs     afero.Fs
	source rand.Source
	log    *charmlog.Logger
}

// Option configures a normalizer.
type Option func(*options)

// WithFs sets the filesystem delimited extracts are read from. Shapefiles
// are always read from the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithSource sets the generator used by Fairfield's row down-sampling.
// Without it a randomly seeded generator is used and the sample differs
// between runs.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.source = src }
}

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *charmlog.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(county string, opts []Option) options {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Default()
	}
	o.log = o.log.With("county", county)
	return o
}

// Names lists the counties New understands.
func Names() []string {
	return []string{types.Franklin, types.Licking, types.Fairfield}
}

// New returns the normalizer for a county name, matched case-insensitively.
func New(name string, opts ...Option) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case strings.ToLower(types.Franklin):
		return NewFranklin(opts...), nil
	case strings.ToLower(types.Licking):
		return NewLicking(opts...), nil
	case strings.ToLower(types.Fairfield):
		return NewFairfield(opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCounty, name)
}

var (
	half    = decimal.RequireFromString("0.5")
	quarter = decimal.RequireFromString("0.25")
)

// weightedSum returns sum(value_i * weight_i), treating missing values as
// zero.
func weightedSum(r frame.Row, cols []string, weights []decimal.Decimal) (frame.Value, error) {
	total := decimal.Zero
	for i, c := range cols {
		d, err := frame.ToDecimal(frame.FillNull(r[c], int64(0)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		total = total.Add(d.Mul(weights[i]))
	}
	return total, nil
}

// convertColumns coerces the named columns with conv, leaving missing
// values nil.
func convertColumns[T any](df *frame.Frame, conv func(frame.Value) (T, error), cols ...string) error {
	for _, col := range cols {
		if err := df.Mutate(col, func(r frame.Row) (frame.Value, error) {
			if frame.IsNull(r[col]) {
				return nil, nil
			}
			v, err := conv(r[col])
			return v, err
		}); err != nil {
			return err
		}
	}
	return nil
}

func textEquals(v frame.Value, s string) bool {
	t, ok := frame.Text(v)
	return ok && t == s
}

func isIn(v frame.Value, set map[string]struct{}) bool {
	t, ok := frame.Text(v)
	if !ok {
		return false
	}
	_, in := set[t]
	return in
}

func setOf(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
