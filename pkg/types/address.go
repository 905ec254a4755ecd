package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressSnapshot is the delivery address frozen onto an order at
// checkout so later profile edits never rewrite order history.
type AddressSnapshot struct {
	Label   string `json:"label,omitempty"`
	Street  string `json:"street"`
	Area    string `json:"area,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (a AddressSnapshot) OneLine() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Area, a.City, a.State, a.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a AddressSnapshot) Value() (driver.Value, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal address snapshot: %w", err)
	}
	return string(raw), nil
}

func (a *AddressSnapshot) Scan(src any) error {
	switch typed := src.(type) {
	case nil:
		*a = AddressSnapshot{}
		return nil
	case []byte:
		return json.Unmarshal(typed, a)
	case string:
		return json.Unmarshal([]byte(typed), a)
	default:
		return fmt.Errorf("unsupported address snapshot source %T", src)
	}
}
