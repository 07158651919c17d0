//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/coupon"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	UserID         uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	Size           string
	Color          string
	Quantity       int32
	UnitPriceCents int64
	CouponCode     *string
	DiscountCents  int64
	CreatedAt      time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		UserID:         uuid.New(),
		ProductID:      uuid.New(),
		ProductName:    "Canvas Sneaker",
		Size:           "M",
		Color:          "black",
		Quantity:       2,
		UnitPriceCents: 2500,
		CreatedAt:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) lineRequest() reqdto.CartLineRequest {
	return reqdto.CartLineRequest{
		ProductID: b.ProductID,
		Size:      b.Size,
		Color:     b.Color,
		Quantity:  b.Quantity,
	}
}

func (b *CheckoutBuilder) BuildPriceCartRequestDTO() reqdto.PriceCartRequest {
	return reqdto.PriceCartRequest{
		Lines:      []reqdto.CartLineRequest{b.lineRequest()},
		CouponCode: b.CouponCode,
	}
}

func (b *CheckoutBuilder) BuildApplyCouponRequestDTO() reqdto.ApplyCouponRequest {
	code := "SAVE10"
	if b.CouponCode != nil {
		code = *b.CouponCode
	}
	return reqdto.ApplyCouponRequest{
		Lines:      []reqdto.CartLineRequest{b.lineRequest()},
		CouponCode: code,
	}
}

func (b *CheckoutBuilder) BuildCreateOrderRequestDTO() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		Lines:      []reqdto.CartLineRequest{b.lineRequest()},
		CouponCode: b.CouponCode,
		Shipping: reqdto.ShippingAddressRequest{
			FullName:   "Jane Doe",
			Line1:      "1 Main St",
			City:       "Springfield",
			PostalCode: "62701",
			Country:    "US",
		},
		Payment: reqdto.PaymentInfoRequest{
			Method:    "card",
			Reference: "pi_test_123",
		},
	}
}

// BuildPricedCartResult simulates the use case output for a cart priced
// without a coupon.
func (b *CheckoutBuilder) BuildPricedCartResult() *commands.PricedCartResult {
	total := b.UnitPriceCents * int64(b.Quantity)
	pc := cart.PricedCart{
		Lines: []cart.PricedLine{{
			ProductID:      b.ProductID,
			Name:           b.ProductName,
			Brand:          "Acme",
			Slug:           "canvas-sneaker",
			ImageURL:       "https://img.example/sneaker.jpg",
			Size:           b.Size,
			Color:          b.Color,
			Quantity:       b.Quantity,
			UnitPriceCents: b.UnitPriceCents,
			TotalCents:     total,
		}},
		SubtotalCents: total,
	}
	return &commands.PricedCartResult{Cart: coupon.WithoutCoupon(pc)}
}

func (b *CheckoutBuilder) BuildOrderView() *queries.OrderView {
	total := b.UnitPriceCents * int64(b.Quantity)
	return &queries.OrderView{
		ID:     uuid.New(),
		Number: "ORD-20250615-1A2B3C4D5E",
		UserID: b.UserID,
		Items: []queries.OrderItemView{{
			ProductID:      b.ProductID,
			Name:           b.ProductName,
			Brand:          "Acme",
			Slug:           "canvas-sneaker",
			ImageURL:       "https://img.example/sneaker.jpg",
			Size:           b.Size,
			Color:          b.Color,
			Quantity:       b.Quantity,
			UnitPriceCents: b.UnitPriceCents,
			DiscountCents:  b.DiscountCents,
			TotalCents:     total - b.DiscountCents,
		}},
		SubtotalCents:   total,
		DiscountCents:   b.DiscountCents,
		GrandTotalCents: total - b.DiscountCents,
		CouponCode:      b.CouponCode,
		Status:          "confirmed",
		ShippingName:    "Jane Doe",
		ShippingLine1:   "1 Main St",
		ShippingCity:    "Springfield",
		ShippingPostal:  "62701",
		ShippingCountry: "US",
		PaymentMethod:   "card",
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *CheckoutBuilder) BuildOrderListItem() *queries.OrderListItem {
	total := b.UnitPriceCents*int64(b.Quantity) - b.DiscountCents
	return &queries.OrderListItem{
		ID:              uuid.New(),
		Number:          "ORD-20250615-1A2B3C4D5E",
		Status:          "confirmed",
		ItemCount:       1,
		GrandTotalCents: total,
		CreatedAt:       b.CreatedAt,
	}
}
