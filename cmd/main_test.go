package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcels/internal/config"
	"parcels/internal/frame"
	"parcels/internal/logger"
	"parcels/internal/types"
)

const franklinHeader = "ParcelNumber,APPRLND,APPRBLD,LandUse,Cauv,SCHOOL,HOMESTD,TRANDT,NAME1,NAME2," +
	"NBRHD,PCLASS,PRICE,ACREA,ROOMS,BATHS,ANN_TAX,DESCR1,TAXDESI,AREA2,DWELTYP,COND,Grade," +
	"USPS_CITY,HBATHS,BEDRMS,AIRCOND,FIREPLC,YEARBLT,WALL"

// franklinLine returns a CSV row with the leading columns set and the rest
// empty.
func franklinLine(parcel, land, bldg, class string) string {
	cells := make([]string, strings.Count(franklinHeader, ",")+1)
	cells[0], cells[1], cells[2], cells[11] = parcel, land, bldg, class
	return strings.Join(cells, ",")
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prevFs, prevLog := osFs, log
	osFs, log = afero.NewMemMapFs(), logger.Discard()
	t.Cleanup(func() { osFs, log = prevFs, prevLog })
	return osFs
}

func TestRunPipeline(t *testing.T) {
	t.Run("Should combine counties into the canonical schema", func(t *testing.T) {
		fs := useMemFs(t)
		extract := strings.Join([]string{
			franklinHeader,
			franklinLine("010-1", "1000", "5000", "R"),
			franklinLine("010-2", "1000", "5000", "C"),
			franklinLine("010-3", "2000", "7000", "R"),
		}, "\n") + "\n"
		require.NoError(t, afero.WriteFile(fs, "in/a.csv", []byte(extract), 0o644))
		require.NoError(t, afero.WriteFile(fs, "in/b.csv", []byte(extract), 0o644))

		p := &config.Pipeline{Jobs: []config.Job{
			{County: "franklin", Input: "in/a.csv"},
			{County: "Franklin", Input: "in/b.csv"},
		}}
		out, err := runPipeline(p)
		require.NoError(t, err)
		assert.Equal(t, types.CanonicalColumns, out.Columns())
		assert.Equal(t, 4, out.Len())
		for _, r := range out.Rows() {
			assert.Equal(t, types.Franklin, r[types.County])
		}
	})
	t.Run("Should stop at the first failing job", func(t *testing.T) {
		useMemFs(t)
		p := &config.Pipeline{Jobs: []config.Job{{County: "franklin", Input: "missing.csv"}}}
		_, err := runPipeline(p)
		assert.Error(t, err)
	})
	t.Run("Should return an empty canonical table without jobs", func(t *testing.T) {
		useMemFs(t)
		out, err := runPipeline(&config.Pipeline{})
		require.NoError(t, err)
		assert.Equal(t, types.CanonicalColumns, out.Columns())
		assert.Zero(t, out.Len())
	})
}

func TestWriteFrame(t *testing.T) {
	t.Run("Should create parent directories", func(t *testing.T) {
		fs := useMemFs(t)
		f := frame.FromRows([]string{"a"}, []frame.Row{{"a": "1"}})
		require.NoError(t, writeFrame("out/nested/parcels.csv", f))
		data, err := afero.ReadFile(fs, "out/nested/parcels.csv")
		require.NoError(t, err)
		assert.Equal(t, "a\n1\n", string(data))
	})
}

func TestRenderTable(t *testing.T) {
	f := frame.FromRows([]string{"ParcelNumber", "OwnerName"}, []frame.Row{
		{"ParcelNumber": "1", "OwnerName": "SMITH"},
		{"ParcelNumber": "2", "OwnerName": nil},
		{"ParcelNumber": "3", "OwnerName": "JONES"},
	})

	t.Run("Should align columns and limit rows", func(t *testing.T) {
		var buf bytes.Buffer
		renderTable(&buf, f, 2, 0)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "ParcelNumber | OwnerName", lines[0])
		assert.Equal(t, "-------------+----------", lines[1])
		assert.Equal(t, "1            | SMITH", lines[2])
		assert.Equal(t, "2", lines[3])
		assert.Equal(t, "(2 of 3 rows)", lines[4])
	})
	t.Run("Should end lines at the last non-empty cell", func(t *testing.T) {
		gaps := frame.FromRows([]string{"a", "b", "c"}, []frame.Row{
			{"a": "x", "b": nil, "c": "z"},
			{"a": nil, "b": "y", "c": nil},
		})
		var buf bytes.Buffer
		renderTable(&buf, gaps, -1, 0)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "x |   | z", lines[2])
		assert.Equal(t, "  | y", lines[3])
		for _, l := range lines {
			assert.False(t, strings.HasSuffix(l, " "), "%q", l)
			assert.False(t, strings.HasSuffix(l, "|"), "%q", l)
		}
	})
	t.Run("Should drop columns that do not fit the terminal", func(t *testing.T) {
		var buf bytes.Buffer
		renderTable(&buf, f, -1, 14)
		out := buf.String()
		assert.NotContains(t, out, "OwnerName")
		assert.Contains(t, out, "(1 more columns)")
		assert.Contains(t, out, "(3 of 3 rows)")
	})
	t.Run("Should truncate wide cells", func(t *testing.T) {
		wide := frame.FromRows([]string{"d"}, []frame.Row{{"d": strings.Repeat("x", 40)}})
		var buf bytes.Buffer
		renderTable(&buf, wide, 1, 0)
		assert.Contains(t, buf.String(), strings.Repeat("x", maxCellWidth-1)+"…")
		assert.NotContains(t, buf.String(), strings.Repeat("x", maxCellWidth))
	})
}
