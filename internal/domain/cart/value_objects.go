package cart

import (
	"errors"
	"strings"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("price cannot be negative")
)

// Variant selects a concrete product variation (size/color).
// Both fields are optional; products without variations leave them empty.
type Variant struct {
	size  string
	color string
}

func NewVariant(size, color string) Variant {
	return Variant{
		size:  strings.TrimSpace(size),
		color: strings.TrimSpace(color),
	}
}

func (v Variant) Size() string  { return v.size }
func (v Variant) Color() string { return v.color }

func (v Variant) IsZero() bool {
	return v.size == "" && v.color == ""
}

type Quantity struct {
	value int32
}

func NewQuantity(value int32) (Quantity, error) {
	if value < 1 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int32 { return q.value }

// ClampTo caps the quantity at the given stock level.
func (q Quantity) ClampTo(stock int32) Quantity {
	if q.value > stock {
		return Quantity{value: stock}
	}
	return q
}
