package coupon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode     = errors.New("invalid coupon code format")
	ErrInvalidDiscountKind   = errors.New("unknown discount kind")
	ErrInvalidDiscountAmount = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountRate   = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// DiscountKind is a closed set; adding a kind forces every switch over it
// to be revisited (Amount returns ErrInvalidDiscountKind for anything
// outside the set rather than guessing).
type DiscountKind string

const (
	KindPercentage DiscountKind = "percentage"
	KindFixed      DiscountKind = "fixed"
)

// Discount is a tagged variant: a percentage of the subtotal or a fixed
// amount in minor currency units.
type Discount struct {
	kind  DiscountKind
	value int64
}

func NewPercentageDiscount(percent int64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountRate
	}
	return Discount{kind: KindPercentage, value: percent}, nil
}

func NewFixedDiscount(amountCents int64) (Discount, error) {
	if amountCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: KindFixed, value: amountCents}, nil
}

func NewDiscount(kind DiscountKind, value int64) (Discount, error) {
	switch kind {
	case KindPercentage:
		return NewPercentageDiscount(value)
	case KindFixed:
		return NewFixedDiscount(value)
	default:
		return Discount{}, fmt.Errorf("%w: %q", ErrInvalidDiscountKind, kind)
	}
}

func (d Discount) Kind() DiscountKind { return d.kind }
func (d Discount) Value() int64       { return d.value }

// Amount computes the raw discount for a subtotal, before any cap.
// Percentage amounts round half-up at the cent; fixed amounts never
// exceed the subtotal.
func (d Discount) Amount(subtotalCents int64) (int64, error) {
	if subtotalCents < 0 {
		return 0, ErrInvalidDiscountAmount
	}
	switch d.kind {
	case KindPercentage:
		return roundHalfUpDiv(subtotalCents*d.value, 100), nil
	case KindFixed:
		return min(d.value, subtotalCents), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiscountKind, d.kind)
	}
}

// roundHalfUpDiv divides n by d rounding half away from zero.
// Both arguments are expected non-negative here.
func roundHalfUpDiv(n, d int64) int64 {
	return (n + d/2) / d
}
