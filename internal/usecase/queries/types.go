package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type OrderItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	Slug           string    `json:"slug"`
	ImageURL       string    `json:"image_url"`
	Size           string    `json:"size"`
	Color          string    `json:"color"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	DiscountCents  int64     `json:"discount_cents"`
	TotalCents     int64     `json:"total_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	UserID          uuid.UUID       `json:"user_id"`
	Items           []OrderItemView `json:"items"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	DiscountCents   int64           `json:"discount_cents"`
	GrandTotalCents int64           `json:"grand_total_cents"`
	CouponID        *uuid.UUID      `json:"coupon_id,omitempty"`
	CouponCode      *string         `json:"coupon_code,omitempty"`
	Status          string          `json:"status"`
	ShippingName    string          `json:"shipping_name"`
	ShippingLine1   string          `json:"shipping_line1"`
	ShippingLine2   *string         `json:"shipping_line2,omitempty"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingState   *string         `json:"shipping_state,omitempty"`
	ShippingPostal  string          `json:"shipping_postal"`
	ShippingCountry string          `json:"shipping_country"`
	ShippingPhone   *string         `json:"shipping_phone,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentRef      *string         `json:"payment_ref,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID              uuid.UUID `json:"id"`
	Number          string    `json:"number"`
	Status          string    `json:"status"`
	ItemCount       int32     `json:"item_count"`
	GrandTotalCents int64     `json:"grand_total_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type CouponView struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	DiscountKind     string     `json:"discount_kind"`
	DiscountValue    int64      `json:"discount_value"`
	MinOrderCents    *int64     `json:"min_order_cents,omitempty"`
	MaxDiscountCents *int64     `json:"max_discount_cents,omitempty"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
}

type Cursor struct {
	After string
}
