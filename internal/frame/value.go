package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used to read and write date cells.
const DateLayout = "2006-01-02"

// IsNull reports whether v is the missing marker. Empty strings count as
// missing.
func IsNull(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case float64:
		return math.IsNaN(t)
	}
	return false
}

// FillNull returns def when v is missing, v otherwise.
func FillNull(v, def Value) Value {
	if IsNull(v) {
		return def
	}
	return v
}

// ToInt coerces v to an integer. Float literals are truncated toward zero.
func ToInt(v Value) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("%w: cannot convert %v to integer", ErrTypeConversion, t)
		}
		return int64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case decimal.Decimal:
		return t.IntPart(), nil
	case string:
		s := cleanNumber(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f), nil
		}
	}
	return 0, fmt.Errorf("%w: cannot convert %q to integer", ErrTypeConversion, Format(v))
}

// ToFloat coerces v to a float.
func ToFloat(v Value) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case string:
		if f, err := strconv.ParseFloat(cleanNumber(t), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot convert %q to float", ErrTypeConversion, Format(v))
}

// ToDecimal coerces v to a decimal.
func ToDecimal(v Value) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			break
		}
		return decimal.NewFromFloat(t), nil
	case bool:
		if t {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	case string:
		if d, err := decimal.NewFromString(cleanNumber(t)); err == nil {
			return d, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: cannot convert %q to decimal", ErrTypeConversion, Format(v))
}

// Truthy reports whether v is "set": non-zero numbers, true, or non-empty
// non-numeric text.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		if f, err := strconv.ParseFloat(cleanNumber(t), 64); err == nil {
			return f != 0
		}
		return t != ""
	}
	if f, err := ToFloat(v); err == nil {
		return f != 0
	}
	return true
}

// Text returns v as a string and whether it was non-missing.
func Text(v Value) (string, bool) {
	if v == nil {
		return "", false
	}
	return Format(v), true
}

// Format renders a cell for text output. Missing values render empty.
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		return t.String()
	case time.Time:
		return t.Format(DateLayout)
	}
	return fmt.Sprint(v)
}

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
