package county

import (
	"fmt"
	"math/rand/v2"

	"parcels/internal/frame"
	"parcels/internal/sampler"
	"parcels/internal/types"
)

// FairfieldSampleFraction is the share of cleaned rows Fairfield keeps.
const FairfieldSampleFraction = 0.1

var fairfieldColumns = []string{
	"PARID", "ACRES", "APRLAND", "APRBLDG", "SFLA", "RMBED", "FIXBATH",
	"FIXHALF", "LEGAL1", "OWN1", "OWN2", "WBFP_O", "GRDFACT", "LUC",
	"MCITYNAME", "YRBLT", "RMTOT", "HEAT", "PRICE", "EXTWALL", "TRANSDT",
}

var fairfieldRenames = map[string]string{
	"PARID":     types.ParcelNumber,
	"ACRES":     types.Acreage,
	"APRLAND":   types.AppraisedTaxableLand,
	"APRBLDG":   types.AppraisedTaxableBuilding,
	"SFLA":      types.Area,
	"RMBED":     types.Bedrooms,
	"LEGAL1":    types.LegalDescription,
	"OWN1":      types.OwnerName,
	"WBFP_O":    "FireplaceOpenings",
	"GRDFACT":   types.Grade,
	"LUC":       types.LandUse,
	"MCITYNAME": types.USPSCity,
	"YRBLT":     types.YearBuilt,
	"RMTOT":     types.Rooms,
	"HEAT":      types.Heat,
	"PRICE":     types.SalePrice,
	"EXTWALL":   types.WallType,
	"TRANSDT":   types.TransferDate,
}

// Columns the Fairfield extract has no source for.
var fairfieldUnknown = []string{
	types.AnnualTaxes,
	types.CAUV,
	types.Condition,
	types.DwellingType,
	types.NeighborhoodCode,
	types.SchoolDistrict,
	types.TaxDesignation,
}

var fairfieldCanonical = identity(map[string]string{types.Fireplaces: "FireplacesFlag"})

// Fairfield normalizes the Fairfield County parcel shapefile.
type Fairfield struct {
	opts options
}

func NewFairfield(opts ...Option) *Fairfield {
	return &Fairfield{opts: newOptions(types.Fairfield, opts)}
}

func (n *Fairfield) Name() string { return types.Fairfield }

func (n *Fairfield) Clean(path string) (*frame.Frame, error) {
	raw, err := readShapefile(path)
	if err != nil {
		return nil, fmt.Errorf("read fairfield shapefile %s: %w", path, err)
	}
	return n.Transform(raw)
}

func (n *Fairfield) Normalize(path string) (*frame.Frame, error) {
	f, err := n.Clean(path)
	if err != nil {
		return nil, err
	}
	return Conform(f, fairfieldCanonical)
}

func (n *Fairfield) generator() *rand.Rand {
	if n.opts.source != nil {
		return rand.New(n.opts.source)
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Transform applies the Fairfield cleaning steps to a loaded attribute
// table. raw is left unchanged.
func (n *Fairfield) Transform(raw *frame.Frame) (*frame.Frame, error) {
	log := n.opts.log
	if !raw.Has("CLASS") {
		return nil, fmt.Errorf("fairfield: %w: CLASS", frame.ErrMissingColumn)
	}
	df, err := raw.Select(append([]string{"CLASS"}, fairfieldColumns...)...)
	if err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	df.Filter(func(r frame.Row) bool { return textEquals(r["CLASS"], "R") })
	if err := df.Drop("CLASS"); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	log.Debug("residential parcels", "rows", df.Len())

	if err := convertColumns(df, frame.ToDecimal, "APRLAND", "APRBLDG"); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}

	// A missing bath count leaves Bathrooms unknown.
	if err := df.Mutate(types.Bathrooms, func(r frame.Row) (frame.Value, error) {
		if frame.IsNull(r["FIXBATH"]) || frame.IsNull(r["FIXHALF"]) {
			return nil, nil
		}
		full, err := frame.ToDecimal(r["FIXBATH"])
		if err != nil {
			return nil, fmt.Errorf("FIXBATH: %w", err)
		}
		halves, err := frame.ToDecimal(r["FIXHALF"])
		if err != nil {
			return nil, fmt.Errorf("FIXHALF: %w", err)
		}
		return full.Add(halves.Mul(half)), nil
	}); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	if err := df.Drop("FIXBATH", "FIXHALF"); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}

	df.Filter(func(r frame.Row) bool { return !frame.IsNull(r["HEAT"]) })
	log.Debug("heat recorded", "rows", df.Len())

	heat, err := df.Column("HEAT")
	if err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	air := make([]frame.Value, len(heat))
	for i, h := range heat {
		air[i] = textEquals(h, "3")
		heat[i] = !textEquals(h, "1")
	}
	if err := df.SetColumn(types.AirConditioning, air); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	if err := df.SetColumn("HEAT", heat); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}

	if err := df.Rename(fairfieldRenames); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}

	k := int(FairfieldSampleFraction * float64(df.Len()))
	positions, err := sampler.SampleIndices(n.generator(), 0, df.Len(), k)
	if err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	if df, err = df.Take(positions); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	log.Debug("down-sampled", "rows", df.Len())

	for _, c := range fairfieldUnknown {
		df.Set(c, nil)
	}
	if err := df.Mutate("FireplacesFlag", func(r frame.Row) (frame.Value, error) {
		if frame.IsNull(r["FireplaceOpenings"]) {
			return false, nil
		}
		v, err := frame.ToFloat(r["FireplaceOpenings"])
		if err != nil {
			return nil, err
		}
		return v > 0, nil
	}); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	if err := df.Drop("OWN2"); err != nil {
		return nil, fmt.Errorf("fairfield: %w", err)
	}
	df.Set(types.County, types.Fairfield)
	return df, nil
}
