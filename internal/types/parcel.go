package types

// County names stamped into the County column.
const (
	Franklin  = "Franklin"
	Licking   = "Licking"
	Fairfield = "Fairfield"
)

// Canonical column names shared by every county's normalized table.
const (
	ParcelNumber             = "ParcelNumber"
	OwnerName                = "OwnerName"
	AppraisedTaxableLand     = "AppraisedTaxableLand"
	AppraisedTaxableBuilding = "AppraisedTaxableBuilding"

	Acreage  = "Acreage"
	Area     = "Area"
	Rooms    = "Rooms"
	Bedrooms = "Bedrooms"

	Bathrooms       = "Bathrooms"
	Heat            = "Heat"
	AirConditioning = "AirConditioning"
	Fireplaces      = "Fireplaces"

	Grade            = "Grade"
	Condition        = "Condition"
	LandUse          = "LandUse"
	LegalDescription = "LegalDescription"
	USPSCity         = "USPSCity"
	YearBuilt        = "YearBuilt"
	WallType         = "WallType"

	TransferDate = "TransferDate"
	SalePrice    = "SalePrice"
	AnnualTaxes  = "AnnualTaxes"
	CAUV         = "CAUV"

	NeighborhoodCode = "NeighborhoodCode"
	DwellingType     = "DwellingType"
	SchoolDistrict   = "SchoolDistrict"
	TaxDesignation   = "TaxDesignation"

	County = "County"
)

// CanonicalColumns is the column set, in order, of every normalized parcel
// table regardless of source county.
var CanonicalColumns = []string{
	ParcelNumber,
	OwnerName,
	AppraisedTaxableLand,
	AppraisedTaxableBuilding,
	Acreage,
	Area,
	Rooms,
	Bedrooms,
	Bathrooms,
	Heat,
	AirConditioning,
	Fireplaces,
	Grade,
	Condition,
	LandUse,
	LegalDescription,
	USPSCity,
	YearBuilt,
	WallType,
	TransferDate,
	SalePrice,
	AnnualTaxes,
	CAUV,
	NeighborhoodCode,
	DwellingType,
	SchoolDistrict,
	TaxDesignation,
	County,
}
