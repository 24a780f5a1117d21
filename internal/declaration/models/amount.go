package models

import (
	"github.com/shopspring/decimal"
)

// Amount is a monetary or numeric value carried on the wire as a JSON number.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from an integer.
func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// ParseAmount parses a decimal string.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// AmountPtr is a convenience for optional item fields.
func AmountPtr(v int64) *Amount {
	a := NewAmount(v)
	return &a
}

// MarshalJSON writes the value unquoted.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

// Equal compares two amounts numerically.
func (a Amount) Equal(o Amount) bool {
	return a.Decimal.Equal(o.Decimal)
}
