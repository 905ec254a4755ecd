package enums

import "fmt"

// PriceBand buckets products by their estimated price range in rupees.
type PriceBand string

const (
	PriceBandAll      PriceBand = "all"
	PriceBandUnder50  PriceBand = "under-50"
	PriceBand50To100  PriceBand = "50-100"
	PriceBandAbove100 PriceBand = "above-100"
)

var validPriceBands = []PriceBand{PriceBandAll, PriceBandUnder50, PriceBand50To100, PriceBandAbove100}

func (b PriceBand) String() string { return string(b) }

func (b PriceBand) IsValid() bool {
	for _, v := range validPriceBands {
		if b == v {
			return true
		}
	}
	return false
}

func ParsePriceBand(raw string) (PriceBand, error) {
	if raw == "" {
		return PriceBandAll, nil
	}
	band := PriceBand(raw)
	if !band.IsValid() {
		return "", fmt.Errorf("invalid price band %q", raw)
	}
	return band, nil
}

// SortBy orders catalog listings.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByPriceLow  SortBy = "price-low"
	SortByPriceHigh SortBy = "price-high"
)

var validSortBys = []SortBy{SortByName, SortByPriceLow, SortByPriceHigh}

func (s SortBy) String() string { return string(s) }

func (s SortBy) IsValid() bool {
	for _, v := range validSortBys {
		if s == v {
			return true
		}
	}
	return false
}

func ParseSortBy(raw string) (SortBy, error) {
	if raw == "" {
		return SortByName, nil
	}
	sort := SortBy(raw)
	if !sort.IsValid() {
		return "", fmt.Errorf("invalid sort option %q", raw)
	}
	return sort, nil
}
