package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceRange is an estimated rupee range; vegetable prices fluctuate
// daily so the catalog quotes min and max rather than a single figure.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func NewPriceRange(minRupees, maxRupees int64) PriceRange {
	return PriceRange{
		Min: decimal.NewFromInt(minRupees),
		Max: decimal.NewFromInt(maxRupees),
	}
}

// Times scales both bounds by a quantity.
func (p PriceRange) Times(qty decimal.Decimal) PriceRange {
	return PriceRange{
		Min: p.Min.Mul(qty),
		Max: p.Max.Mul(qty),
	}
}

func (p PriceRange) Add(other PriceRange) PriceRange {
	return PriceRange{
		Min: p.Min.Add(other.Min),
		Max: p.Max.Add(other.Max),
	}
}

func (p PriceRange) Value() (driver.Value, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal price range: %w", err)
	}
	return string(raw), nil
}

func (p *PriceRange) Scan(src any) error {
	switch typed := src.(type) {
	case nil:
		*p = PriceRange{}
		return nil
	case []byte:
		return json.Unmarshal(typed, p)
	case string:
		return json.Unmarshal([]byte(typed), p)
	default:
		return fmt.Errorf("unsupported price range source %T", src)
	}
}
