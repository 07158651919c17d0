package coupon

import (
	"errors"
	"sort"

	"storefront/internal/domain/cart"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cannot apply coupon to an empty cart")

// DiscountedCart is a priced cart with a coupon's discount applied and
// distributed across lines. A cart without a coupon is represented with
// a nil CouponID and zero discount so checkout has a single input shape.
type DiscountedCart struct {
	Cart       cart.PricedCart
	CouponID   *uuid.UUID
	CouponCode *string
	// DiscountCents is the total discount; LineDiscounts[i] belongs to
	// Cart.Lines[i] and the slice always sums exactly to DiscountCents.
	DiscountCents   int64
	LineDiscounts   []int64
	GrandTotalCents int64
}

// WithoutCoupon wraps a priced cart with no discount.
func WithoutCoupon(pc cart.PricedCart) DiscountedCart {
	return DiscountedCart{
		Cart:            pc,
		LineDiscounts:   make([]int64, len(pc.Lines)),
		GrandTotalCents: pc.SubtotalCents,
	}
}

// Apply computes the coupon's discount for the priced cart, caps it at
// the coupon's maximum discount amount, and distributes it across lines
// proportionally to each line's share of the subtotal. The result never
// exceeds the subtotal and is never negative.
func Apply(c *Coupon, pc cart.PricedCart) (DiscountedCart, error) {
	if pc.IsEmpty() {
		return DiscountedCart{}, ErrEmptyCart
	}

	total, err := c.discount.Amount(pc.SubtotalCents)
	if err != nil {
		return DiscountedCart{}, err
	}
	if c.maxDiscount != nil && total > *c.maxDiscount {
		total = *c.maxDiscount
	}
	if total > pc.SubtotalCents {
		total = pc.SubtotalCents
	}
	if total < 0 {
		total = 0
	}

	weights := make([]int64, len(pc.Lines))
	for i, line := range pc.Lines {
		weights[i] = line.TotalCents
	}

	id := c.id
	code := c.code.String()
	return DiscountedCart{
		Cart:            pc,
		CouponID:        &id,
		CouponCode:      &code,
		DiscountCents:   total,
		LineDiscounts:   distribute(total, weights),
		GrandTotalCents: pc.SubtotalCents - total,
	}, nil
}

// distribute splits total across weights proportionally using the
// largest-remainder method, so the shares always sum exactly to total.
// Ties go to the earlier line for determinism.
func distribute(total int64, weights []int64) []int64 {
	shares := make([]int64, len(weights))
	if total == 0 || len(weights) == 0 {
		return shares
	}

	var sum int64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		// Degenerate all-zero cart: everything lands on the first line.
		shares[0] = total
		return shares
	}

	type remainder struct {
		index int
		value int64
	}
	remainders := make([]remainder, len(weights))

	var allocated int64
	for i, w := range weights {
		shares[i] = total * w / sum
		allocated += shares[i]
		remainders[i] = remainder{index: i, value: total * w % sum}
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].value > remainders[b].value
	})

	for i := int64(0); i < total-allocated; i++ {
		shares[remainders[i].index]++
	}

	return shares
}
