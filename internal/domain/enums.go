package domain

type PriceType string

const (
	PriceFixed  PriceType = "FIXED"
	PriceHourly PriceType = "HOURLY"
)

// ValidPriceTypes is the canonical set of accepted price type strings.
var ValidPriceTypes = map[string]bool{
	"FIXED": true, "HOURLY": true,
}

type CompanySize string

const (
	SizeSmall  CompanySize = "small"
	SizeMedium CompanySize = "medium"
	SizeLarge  CompanySize = "large"
)
