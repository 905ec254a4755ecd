package enums

import "fmt"

// QuantityType controls how a product is measured on the storefront:
// leafy greens sell by the kilogram, items like lemons by the piece.
type QuantityType string

const (
	QuantityWeight QuantityType = "weight"
	QuantityPieces QuantityType = "pieces"
)

var validQuantityTypes = []QuantityType{QuantityWeight, QuantityPieces}

func (q QuantityType) String() string {
	return string(q)
}

func (q QuantityType) IsValid() bool {
	for _, v := range validQuantityTypes {
		if q == v {
			return true
		}
	}
	return false
}

func ParseQuantityType(raw string) (QuantityType, error) {
	qt := QuantityType(raw)
	if !qt.IsValid() {
		return "", fmt.Errorf("invalid quantity type %q", raw)
	}
	return qt, nil
}
