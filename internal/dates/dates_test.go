package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcels/internal/frame"
)

func TestModDate(t *testing.T) {
	t.Run("Should parse valid dates and null the rest", func(t *testing.T) {
		f := frame.FromRows([]string{"month", "other"}, []frame.Row{
			{"month": "2021-03-01", "other": "2021-03-01"},
			{"month": "03/01/2021"},
			{"month": nil},
			{"month": "2021-02-30"},
		})
		out, err := ModDate(f, "other")
		require.NoError(t, err)
		assert.Same(t, f, out)
		col, _ := out.Column("month")
		assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), col[0])
		assert.Nil(t, col[1])
		assert.Nil(t, col[2])
		assert.Nil(t, col[3])
	})
	t.Run("Should ignore the column argument", func(t *testing.T) {
		f := frame.FromRows([]string{"month", "sold"}, []frame.Row{{"month": "2020-01-15", "sold": "2020-01-15"}})
		_, err := ModDate(f, "sold")
		require.NoError(t, err)
		assert.Equal(t, "2020-01-15", f.Rows()[0]["sold"])
		assert.IsType(t, time.Time{}, f.Rows()[0]["month"])
	})
	t.Run("Should fail without a month column", func(t *testing.T) {
		_, err := ModDate(frame.New("sold"), "sold")
		assert.ErrorIs(t, err, frame.ErrMissingColumn)
	})
}
