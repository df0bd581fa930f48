package county

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"parcels/internal/frame"
	"parcels/internal/types"
)

const (
	// lickingBadLiteral carries a stray semicolon that splits the field it
	// sits in when the extract is parsed as semicolon-delimited.
	lickingBadLiteral   = "430 Resturant; cafteria and/or bar"
	lickingFixedLiteral = "430 Resturant, cafeteria and/or bar"

	lickingHeaderPrefix = "fld"
)

var lickingStyles = setOf(
	"Single Family",
	"MFD Home",
	"Tri-Level",
	"Duplex",
	"Bi-Level",
	"Multi-Level",
	"Condominum",
	"Mobile Home",
	"Triplex",
	"4-Level",
)

var lickingColumns = []string{
	"ParcelNo", "Owner", "Grade", "Condition", "MarketLand", "LUC",
	"SchoolDistrict", "TaxDistrict", "Neighborhood", "Subtotal", "CAUVTotal",
	"LegalDesc", "PropertyType", "Exterior", "MarketImprov", "SalesDate1",
	"SalesPrice1", "AcreageTotal", "FinishedLivingArea", "Rooms", "Bedrooms",
	"FullBaths", "HalfBaths", "OtherBaths", "Heating", "Cooling",
	"FireplaceOpenings", "YearBuilt", "MailingAddress5",
}

var lickingRenames = map[string]string{
	"ParcelNo":           types.ParcelNumber,
	"Owner":              types.OwnerName,
	"MarketLand":         types.AppraisedTaxableLand,
	"MarketImprov":       types.AppraisedTaxableBuilding,
	"Subtotal":           types.AnnualTaxes,
	"Neighborhood":       types.NeighborhoodCode,
	"CAUVTotal":          types.CAUV,
	"LegalDesc":          types.LegalDescription,
	"PropertyType":       types.DwellingType,
	"Exterior":           types.WallType,
	"SalesDate1":         types.TransferDate,
	"SalesPrice1":        types.SalePrice,
	"AcreageTotal":       types.Acreage,
	"FinishedLivingArea": types.Area,
	"Heating":            types.Heat,
	"Cooling":            types.AirConditioning,
	"MailingAddress5":    types.USPSCity,
	"LUC":                types.LandUse,
}

// Licking has no tax designation.
var lickingCanonical = identity(nil, types.TaxDesignation)

// Licking normalizes the Licking County semicolon-delimited extract.
type Licking struct {
	opts options
}

func NewLicking(opts ...Option) *Licking {
	return &Licking{opts: newOptions(types.Licking, opts)}
}

func (n *Licking) Name() string { return types.Licking }

func (n *Licking) Clean(path string) (*frame.Frame, error) {
	content, err := afero.ReadFile(n.opts.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read licking extract %s: %w", path, err)
	}
	return n.CleanText(string(content))
}

func (n *Licking) Normalize(path string) (*frame.Frame, error) {
	f, err := n.Clean(path)
	if err != nil {
		return nil, err
	}
	return Conform(f, lickingCanonical)
}

// CleanText repairs, parses and cleans the full text of an extract.
func (n *Licking) CleanText(content string) (*frame.Frame, error) {
	content = strings.ReplaceAll(content, lickingBadLiteral, lickingFixedLiteral)
	raw, err := frame.ReadDelimited(strings.NewReader(content), ';')
	if err != nil {
		return nil, fmt.Errorf("parse licking extract: %w", err)
	}
	return n.Transform(raw)
}

// Transform applies the Licking cleaning steps to a parsed extract. raw is
// left unchanged.
func (n *Licking) Transform(raw *frame.Frame) (*frame.Frame, error) {
	log := n.opts.log
	raw = raw.Clone()
	raw.RenameColumns(func(c string) string { return strings.ReplaceAll(c, lickingHeaderPrefix, "") })
	if !raw.Has("Style") {
		return nil, fmt.Errorf("licking: %w: Style", frame.ErrMissingColumn)
	}
	raw.Filter(func(r frame.Row) bool { return isIn(r["Style"], lickingStyles) })
	log.Debug("residential styles", "rows", raw.Len())

	df, err := raw.Select(lickingColumns...)
	if err != nil {
		return nil, fmt.Errorf("licking: %w", err)
	}

	if err := convertColumns(df, frame.ToInt, "MarketLand", "MarketImprov"); err != nil {
		return nil, fmt.Errorf("licking: %w", err)
	}

	if err := df.Mutate(types.Bathrooms, func(r frame.Row) (frame.Value, error) {
		return weightedSum(r,
			[]string{"FullBaths", "HalfBaths", "OtherBaths"},
			[]decimal.Decimal{decimal.NewFromInt(1), half, quarter})
	}); err != nil {
		return nil, fmt.Errorf("licking: %w", err)
	}
	if err := df.Drop("FullBaths", "HalfBaths", "OtherBaths"); err != nil {
		return nil, fmt.Errorf("licking: %w", err)
	}

	steps := []struct {
		col string
		fn  func(frame.Row) (frame.Value, error)
	}{
		{"Heating", func(r frame.Row) (frame.Value, error) { return !textEquals(r["Heating"], "No Heat"), nil }},
		{"Cooling", func(r frame.Row) (frame.Value, error) { return textEquals(r["Cooling"], "Central"), nil }},
		{"FireplaceOpenings", func(r frame.Row) (frame.Value, error) {
			return frame.FillNull(r["FireplaceOpenings"], int64(0)), nil
		}},
		{types.Fireplaces, func(r frame.Row) (frame.Value, error) { return frame.Truthy(r["FireplaceOpenings"]), nil }},
	}
	for _, s := range steps {
		if err := df.Mutate(s.col, s.fn); err != nil {
			return nil, fmt.Errorf("licking: %w", err)
		}
	}

	if err := df.Rename(lickingRenames); err != nil {
		return nil, fmt.Errorf("licking: %w", err)
	}
	df.Set(types.County, types.Licking)
	log.Debug("cleaned", "rows", df.Len())
	return df, nil
}
