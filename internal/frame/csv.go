package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadDelimited parses a delimited table with a header row. Cell text is
// kept as read, so padded codes do not match their bare form; empty cells
// become nil. Short rows are padded with nil and surplus fields are ignored.
func ReadDelimited(r io.Reader, delim rune) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read delimited: empty input")
		}
		return nil, fmt.Errorf("read delimited header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimPrefix(h, "\ufeff")
	}

	f := New(header...)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read delimited line %d: %w", line, err)
		}
		row := make(Row, len(header))
		for j, h := range header {
			if j >= len(rec) {
				row[h] = nil
				continue
			}
			if v := rec[j]; v != "" {
				row[h] = v
			} else {
				row[h] = nil
			}
		}
		f.rows = append(f.rows, row)
	}
	return f, nil
}

// WriteCSV writes the frame as comma-separated text with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(f.columns))
	for _, r := range f.rows {
		for i, c := range f.columns {
			rec[i] = Format(r[c])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
