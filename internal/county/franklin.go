package county

import (
	"fmt"

	"github.com/shopspring/decimal"

	"parcels/internal/frame"
	"parcels/internal/types"
)

var franklinColumns = []string{
	"ParcelNumber", "APPRLND", "APPRBLD", "LandUse", "Cauv", "SCHOOL",
	"HOMESTD", "TRANDT", "NAME1", "NAME2", "NBRHD", "PCLASS", "PRICE",
	"ACREA", "ROOMS", "BATHS", "ANN_TAX", "DESCR1", "TAXDESI", "AREA2",
	"DWELTYP", "COND", "Grade", "USPS_CITY", "HBATHS", "BEDRMS", "AIRCOND",
	"FIREPLC", "YEARBLT", "WALL",
}

// franklinCanonical maps canonical columns to Franklin's cleaned columns.
// AIRCOND is an uninterpreted code, so Heat and AirConditioning stay
// unknown.
var franklinCanonical = map[string]string{
	types.ParcelNumber:             "ParcelNumber",
	types.OwnerName:                "NAME1",
	types.AppraisedTaxableLand:     "APPRLND",
	types.AppraisedTaxableBuilding: "APPRBLD",
	types.Acreage:                  "ACREA",
	types.Area:                     "AREA2",
	types.Rooms:                    "ROOMS",
	types.Bedrooms:                 "BEDRMS",
	types.Bathrooms:                "Bathrooms",
	types.Fireplaces:               "Fireplaces",
	types.Grade:                    "Grade",
	types.Condition:                "COND",
	types.LandUse:                  "LandUse",
	types.LegalDescription:         "DESCR1",
	types.USPSCity:                 "USPS_CITY",
	types.YearBuilt:                "YEARBLT",
	types.WallType:                 "WALL",
	types.TransferDate:             "TRANDT",
	types.SalePrice:                "PRICE",
	types.AnnualTaxes:              "ANN_TAX",
	types.CAUV:                     "Cauv",
	types.NeighborhoodCode:         "NBRHD",
	types.DwellingType:             "DWELTYP",
	types.SchoolDistrict:           "SCHOOL",
	types.TaxDesignation:           "TAXDESI",
	types.County:                   types.County,
}

// Franklin normalizes the Franklin County comma-delimited parcel extract.
type Franklin struct {
	opts options
}

func NewFranklin(opts ...Option) *Franklin {
	return &Franklin{opts: newOptions(types.Franklin, opts)}
}

func (n *Franklin) Name() string { return types.Franklin }

func (n *Franklin) Clean(path string) (*frame.Frame, error) {
	f, err := n.opts.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open franklin extract %s: %w", path, err)
	}
	defer f.Close()

	raw, err := frame.ReadDelimited(f, ',')
	if err != nil {
		return nil, fmt.Errorf("parse franklin extract %s: %w", path, err)
	}
	return n.Transform(raw)
}

func (n *Franklin) Normalize(path string) (*frame.Frame, error) {
	f, err := n.Clean(path)
	if err != nil {
		return nil, err
	}
	return Conform(f, franklinCanonical)
}

// Transform applies the Franklin cleaning steps to a parsed extract.
func (n *Franklin) Transform(raw *frame.Frame) (*frame.Frame, error) {
	log := n.opts.log
	df, err := raw.Select(franklinColumns...)
	if err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}

	df.Filter(func(r frame.Row) bool { return textEquals(r["PCLASS"], "R") })
	if err := df.Drop("PCLASS"); err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}
	log.Debug("residential parcels", "rows", df.Len())

	for _, col := range []string{"APPRBLD", "APPRLND"} {
		if err := df.Mutate(col, func(r frame.Row) (frame.Value, error) {
			return frame.ToInt(r[col])
		}); err != nil {
			return nil, fmt.Errorf("franklin: %w", err)
		}
		df.Filter(func(r frame.Row) bool { return r[col].(int64) > 0 })
	}
	log.Debug("positive appraisals", "rows", df.Len())

	if err := df.Mutate(types.Bathrooms, func(r frame.Row) (frame.Value, error) {
		return weightedSum(r, []string{"BATHS", "HBATHS"}, []decimal.Decimal{decimal.NewFromInt(1), half})
	}); err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}
	if err := df.Drop("BATHS", "HBATHS"); err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}

	// FIREPLC stays in the table with missing counts filled.
	if err := df.Mutate("FIREPLC", func(r frame.Row) (frame.Value, error) {
		return frame.FillNull(r["FIREPLC"], int64(0)), nil
	}); err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}
	if err := df.Mutate(types.Fireplaces, func(r frame.Row) (frame.Value, error) {
		return frame.Truthy(r["FIREPLC"]), nil
	}); err != nil {
		return nil, fmt.Errorf("franklin: %w", err)
	}

	df.Set(types.County, types.Franklin)
	return df, nil
}
