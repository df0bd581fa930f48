package county

import (
	"fmt"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"parcels/internal/frame"
)

// featureReader is the part of shp.Reader and shp.ZipReader used here.
type featureReader interface {
	Next() bool
	Attribute(n int) string
	Fields() []shp.Field
	Err() error
	Close() error
}

func openFeatures(path string) (featureReader, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return shp.OpenZip(path)
	}
	return shp.Open(path)
}

// readShapefile loads the DBF attribute table of a shapefile (or a zip
// holding one) into a frame, one row per feature. Geometry is skipped.
func readShapefile(path string) (*frame.Frame, error) {
	r, err := openFeatures(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	df := frame.New(names...)
	for r.Next() {
		row := make(frame.Row, len(names))
		for i, name := range names {
			// DBF cells are padded with spaces or NULs.
			v := strings.TrimSpace(strings.Trim(r.Attribute(i), "\x00"))
			if v == "" {
				row[name] = nil
			} else {
				row[name] = v
			}
		}
		df.Append(row)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", path, err)
	}
	return df, nil
}
