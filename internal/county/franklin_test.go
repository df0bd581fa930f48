package county

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcels/internal/frame"
	"parcels/internal/logger"
	"parcels/internal/types"
)

// franklinExtract renders rows as a Franklin CSV. Unset cells are empty and
// an extra column the normalizer must ignore is appended.
func franklinExtract(columns []string, rows ...map[string]string) string {
	var b strings.Builder
	header := append(append([]string(nil), columns...), "EXTRA")
	b.WriteString(strings.Join(header, ",") + "\n")
	for _, r := range rows {
		cells := make([]string, len(header))
		for i, c := range header {
			cells[i] = r[c]
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return b.String()
}

func franklinRow(parcel, class, land, bldg string) map[string]string {
	return map[string]string{
		"ParcelNumber": parcel, "PCLASS": class, "APPRLND": land, "APPRBLD": bldg,
		"NAME1": "OWNER " + parcel, "EXTRA": "ignored",
	}
}

func newTestFranklin(t *testing.T, content string) (*Franklin, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "franklin.csv", []byte(content), 0o644))
	return NewFranklin(WithFs(fs), WithLogger(logger.Discard())), "franklin.csv"
}

func TestFranklin_Clean(t *testing.T) {
	t.Run("Should keep positive residential parcels only", func(t *testing.T) {
		rows := []map[string]string{
			franklinRow("A", "R", "1000", "5000"),
			franklinRow("B", "C", "1000", "5000"),
			franklinRow("C", "R", "1000", "0"),
			franklinRow("D", "R", "-5", "200"),
			franklinRow("E", "R", "300.0", "400"),
		}
		n, path := newTestFranklin(t, franklinExtract(franklinColumns, rows...))
		df, err := n.Clean(path)
		require.NoError(t, err)
		ids, _ := df.Column("ParcelNumber")
		assert.Equal(t, []frame.Value{"A", "E"}, ids)
		assert.False(t, df.Has("PCLASS"))
		for _, r := range df.Rows() {
			assert.Greater(t, r["APPRBLD"].(int64), int64(0))
			assert.Greater(t, r["APPRLND"].(int64), int64(0))
		}
	})
	t.Run("Should derive bathrooms and keep the fireplace count", func(t *testing.T) {
		full := franklinRow("A", "R", "1", "1")
		full["BATHS"], full["HBATHS"], full["FIREPLC"] = "2", "1", "1"
		empty := franklinRow("B", "R", "1", "1")
		n, path := newTestFranklin(t, franklinExtract(franklinColumns, full, empty))
		df, err := n.Clean(path)
		require.NoError(t, err)
		require.Equal(t, 2, df.Len())

		a, b := df.Rows()[0], df.Rows()[1]
		assert.True(t, decimal.RequireFromString("2.5").Equal(a[types.Bathrooms].(decimal.Decimal)))
		assert.True(t, decimal.Zero.Equal(b[types.Bathrooms].(decimal.Decimal)))
		assert.Equal(t, true, a[types.Fireplaces])
		assert.Equal(t, false, b[types.Fireplaces])
		assert.Equal(t, int64(0), b["FIREPLC"])
		assert.True(t, df.Has("FIREPLC"))
		assert.False(t, df.Has("BATHS"))
		assert.False(t, df.Has("HBATHS"))
		assert.Equal(t, types.Franklin, a[types.County])
	})
	t.Run("Should reject a padded class code", func(t *testing.T) {
		n, path := newTestFranklin(t, franklinExtract(franklinColumns,
			franklinRow("A", "R ", "1", "1"),
			franklinRow("B", " R", "1", "1"),
			franklinRow("C", "R", "1", "1"),
		))
		df, err := n.Clean(path)
		require.NoError(t, err)
		ids, _ := df.Column("ParcelNumber")
		assert.Equal(t, []frame.Value{"C"}, ids)
	})
	t.Run("Should fail on non-numeric appraisals", func(t *testing.T) {
		n, path := newTestFranklin(t, franklinExtract(franklinColumns, franklinRow("A", "R", "1", "n/a")))
		_, err := n.Clean(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, frame.ErrTypeConversion)
	})
	t.Run("Should fail when a source column is absent", func(t *testing.T) {
		cols := append([]string(nil), franklinColumns[:len(franklinColumns)-1]...)
		n, path := newTestFranklin(t, franklinExtract(cols, franklinRow("A", "R", "1", "1")))
		_, err := n.Clean(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, frame.ErrMissingColumn)
		assert.Contains(t, err.Error(), "WALL")
	})
	t.Run("Should fail when the file is missing", func(t *testing.T) {
		n := NewFranklin(WithFs(afero.NewMemMapFs()), WithLogger(logger.Discard()))
		_, err := n.Clean("nope.csv")
		assert.Error(t, err)
	})
}

func TestFranklin_Normalize(t *testing.T) {
	t.Run("Should emit the canonical columns", func(t *testing.T) {
		row := franklinRow("A", "R", "10", "20")
		row["USPS_CITY"], row["SCHOOL"] = "COLUMBUS", "2503"
		n, path := newTestFranklin(t, franklinExtract(franklinColumns, row))
		df, err := n.Normalize(path)
		require.NoError(t, err)
		assert.Equal(t, types.CanonicalColumns, df.Columns())
		r := df.Rows()[0]
		assert.Equal(t, "A", r[types.ParcelNumber])
		assert.Equal(t, "OWNER A", r[types.OwnerName])
		assert.Equal(t, int64(10), r[types.AppraisedTaxableLand])
		assert.Equal(t, int64(20), r[types.AppraisedTaxableBuilding])
		assert.Equal(t, "COLUMBUS", r[types.USPSCity])
		assert.Equal(t, "2503", r[types.SchoolDistrict])
		assert.Nil(t, r[types.Heat])
		assert.Nil(t, r[types.AirConditioning])
		assert.Equal(t, types.Franklin, r[types.County])
	})
}
