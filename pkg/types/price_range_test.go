package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceRangeArithmetic(t *testing.T) {
	spinach := NewPriceRange(20, 25)

	line := spinach.Times(decimal.NewFromInt(2))
	assert.True(t, line.Min.Equal(decimal.NewFromInt(40)))
	assert.True(t, line.Max.Equal(decimal.NewFromInt(50)))

	fractional := NewPriceRange(80, 120).Times(decimal.NewFromFloat(0.5))
	assert.True(t, fractional.Min.Equal(decimal.NewFromInt(40)))
	assert.True(t, fractional.Max.Equal(decimal.NewFromInt(60)))

	total := line.Add(fractional)
	assert.True(t, total.Min.Equal(decimal.NewFromInt(80)))
	assert.True(t, total.Max.Equal(decimal.NewFromInt(110)))
}

func TestPriceRangeScanRoundTrip(t *testing.T) {
	original := NewPriceRange(30, 40)

	value, err := original.Value()
	require.NoError(t, err)

	var scanned PriceRange
	require.NoError(t, scanned.Scan(value))
	assert.True(t, scanned.Min.Equal(original.Min))
	assert.True(t, scanned.Max.Equal(original.Max))

	var fromNil PriceRange
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.Min.IsZero())
}

func TestAddressSnapshotOneLine(t *testing.T) {
	addr := AddressSnapshot{
		Street:  "123 MG Road, Connaught Place",
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
	}
	assert.Equal(t, "123 MG Road, Connaught Place, New Delhi, Delhi, 110001", addr.OneLine())

	partial := AddressSnapshot{City: "Bangalore", State: "Karnataka"}
	assert.Equal(t, "Bangalore, Karnataka", partial.OneLine())
}
