package request

import (
	"strings"

	"storefront/internal/domain/cart"

	"github.com/google/uuid"
)

type CartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type PriceCartRequest struct {
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode *string           `json:"coupon_code,omitempty"`
}

func (r PriceCartRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r PriceCartRequest) ToDomain() ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		line, err := cart.NewLine(l.ProductID, cart.NewVariant(l.Size, l.Color), l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type ApplyCouponRequest struct {
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode string            `json:"coupon_code" binding:"required"`
}

func (r ApplyCouponRequest) ToDomain() ([]cart.Line, error) {
	return PriceCartRequest{Lines: r.Lines}.ToDomain()
}
