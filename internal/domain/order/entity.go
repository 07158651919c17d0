package order

import (
	"errors"
	"time"

	"storefront/internal/domain/coupon"

	"github.com/google/uuid"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

// Item is a checkout-time snapshot of a priced cart line plus its share
// of the coupon discount. Items are deep copies: catalog price changes
// after checkout never alter past orders.
type Item struct {
	productID      uuid.UUID
	name           string
	brand          string
	slug           string
	imageURL       string
	size           string
	color          string
	quantity       int32
	unitPriceCents int64
	discountCents  int64
	totalCents     int64
}

func (i Item) ProductID() uuid.UUID  { return i.productID }
func (i Item) Name() string          { return i.name }
func (i Item) Brand() string         { return i.brand }
func (i Item) Slug() string          { return i.slug }
func (i Item) ImageURL() string      { return i.imageURL }
func (i Item) Size() string          { return i.size }
func (i Item) Color() string         { return i.color }
func (i Item) Quantity() int32       { return i.quantity }
func (i Item) UnitPriceCents() int64 { return i.unitPriceCents }
func (i Item) DiscountCents() int64  { return i.discountCents }
func (i Item) TotalCents() int64     { return i.totalCents }

type Order struct {
	id              uuid.UUID
	number          Number
	userID          uuid.UUID
	items           []Item
	subtotalCents   int64
	discountCents   int64
	grandTotalCents int64
	couponID        *uuid.UUID
	couponCode      *string
	status          Status
	shipping        ShippingAddress
	payment         PaymentInfo
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrder assembles an immutable order from a discounted cart. The
// order starts in StatusConfirmed; from here only the status machine
// can change it.
func NewOrder(
	userID uuid.UUID,
	dc coupon.DiscountedCart,
	shipping ShippingAddress,
	payment PaymentInfo,
	now time.Time,
) (*Order, error) {
	if dc.Cart.IsEmpty() {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, len(dc.Cart.Lines))
	for i, line := range dc.Cart.Lines {
		items[i] = Item{
			productID:      line.ProductID,
			name:           line.Name,
			brand:          line.Brand,
			slug:           line.Slug,
			imageURL:       line.ImageURL,
			size:           line.Size,
			color:          line.Color,
			quantity:       line.Quantity,
			unitPriceCents: line.UnitPriceCents,
			discountCents:  dc.LineDiscounts[i],
			totalCents:     line.TotalCents - dc.LineDiscounts[i],
		}
	}

	return &Order{
		id:              uuid.New(),
		number:          NewNumber(now),
		userID:          userID,
		items:           items,
		subtotalCents:   dc.Cart.SubtotalCents,
		discountCents:   dc.DiscountCents,
		grandTotalCents: dc.GrandTotalCents,
		couponID:        dc.CouponID,
		couponCode:      dc.CouponCode,
		status:          StatusConfirmed,
		shipping:        shipping,
		payment:         payment,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	number Number,
	userID uuid.UUID,
	items []Item,
	subtotalCents, discountCents, grandTotalCents int64,
	couponID *uuid.UUID,
	couponCode *string,
	status Status,
	shipping ShippingAddress,
	payment PaymentInfo,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		number:          number,
		userID:          userID,
		items:           items,
		subtotalCents:   subtotalCents,
		discountCents:   discountCents,
		grandTotalCents: grandTotalCents,
		couponID:        couponID,
		couponCode:      couponCode,
		status:          status,
		shipping:        shipping,
		payment:         payment,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func ReconstructItem(
	productID uuid.UUID,
	name, brand, slug, imageURL, size, color string,
	quantity int32,
	unitPriceCents, discountCents, totalCents int64,
) Item {
	return Item{
		productID:      productID,
		name:           name,
		brand:          brand,
		slug:           slug,
		imageURL:       imageURL,
		size:           size,
		color:          color,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		discountCents:  discountCents,
		totalCents:     totalCents,
	}
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) Number() Number         { return o.number }
func (o *Order) UserID() uuid.UUID      { return o.userID }
func (o *Order) Items() []Item          { return o.items }
func (o *Order) SubtotalCents() int64   { return o.subtotalCents }
func (o *Order) DiscountCents() int64   { return o.discountCents }
func (o *Order) GrandTotalCents() int64 { return o.grandTotalCents }
func (o *Order) CouponID() *uuid.UUID   { return o.couponID }
func (o *Order) CouponCode() *string    { return o.couponCode }
func (o *Order) Status() Status         { return o.status }
func (o *Order) Shipping() ShippingAddress {
	return o.shipping
}
func (o *Order) Payment() PaymentInfo { return o.payment }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// TransitionTo advances the status machine, stamping updatedAt.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	status, err := o.status.Transition(next)
	if err != nil {
		return err
	}
	o.status = status
	o.updatedAt = now
	return nil
}

// Cancel is the only post-commit undo; committed orders are never deleted.
func (o *Order) Cancel(now time.Time) error {
	return o.TransitionTo(StatusCancelled, now)
}
