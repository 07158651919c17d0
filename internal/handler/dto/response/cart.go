package response

import (
	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
)

type PricedLineResponse struct {
	ProductID          uuid.UUID `json:"productId"`
	Name               string    `json:"name"`
	Brand              string    `json:"brand"`
	Slug               string    `json:"slug"`
	ImageURL           string    `json:"imageUrl"`
	Size               string    `json:"size,omitempty"`
	Color              string    `json:"color,omitempty"`
	Quantity           int32     `json:"quantity"`
	UnitPriceCents     int64     `json:"unitPriceCents"`
	OriginalPriceCents *int64    `json:"originalPriceCents,omitempty"`
	TotalCents         int64     `json:"totalCents"`
	DiscountCents      int64     `json:"discountCents"`
	Clamped            bool      `json:"clamped,omitempty"`
}

type RemovedLineResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Reason    string    `json:"reason"`
}

type PricedCartResponse struct {
	Lines           []PricedLineResponse  `json:"lines"`
	Removed         []RemovedLineResponse `json:"removed,omitempty"`
	SubtotalCents   int64                 `json:"subtotalCents"`
	CouponCode      *string               `json:"couponCode,omitempty"`
	DiscountCents   int64                 `json:"discountCents"`
	GrandTotalCents int64                 `json:"grandTotalCents"`
	CouponRejection *string               `json:"couponRejection,omitempty"`
}

func FromPricedCartResult(result *commands.PricedCartResult) *PricedCartResponse {
	dc := result.Cart

	lines := make([]PricedLineResponse, len(dc.Cart.Lines))
	for i, line := range dc.Cart.Lines {
		lines[i] = PricedLineResponse{
			ProductID:          line.ProductID,
			Name:               line.Name,
			Brand:              line.Brand,
			Slug:               line.Slug,
			ImageURL:           line.ImageURL,
			Size:               line.Size,
			Color:              line.Color,
			Quantity:           line.Quantity,
			UnitPriceCents:     line.UnitPriceCents,
			OriginalPriceCents: line.OriginalPriceCents,
			TotalCents:         line.TotalCents,
			DiscountCents:      dc.LineDiscounts[i],
			Clamped:            line.Clamped,
		}
	}

	var removed []RemovedLineResponse
	for _, r := range dc.Cart.Removed {
		removed = append(removed, RemovedLineResponse{
			ProductID: r.ProductID,
			Reason:    string(r.Reason),
		})
	}

	resp := &PricedCartResponse{
		Lines:           lines,
		Removed:         removed,
		SubtotalCents:   dc.Cart.SubtotalCents,
		CouponCode:      dc.CouponCode,
		DiscountCents:   dc.DiscountCents,
		GrandTotalCents: dc.GrandTotalCents,
	}
	if result.Rejection != nil {
		reason := string(result.Rejection.Reason)
		resp.CouponRejection = &reason
	}
	return resp
}
