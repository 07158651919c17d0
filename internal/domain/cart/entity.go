package cart

import (
	"github.com/google/uuid"
)

// Line is a client-supplied cart entry. Only the product reference,
// variant selector and quantity are trusted; everything else (price,
// display fields) is resolved from the catalog at pricing time.
type Line struct {
	productID uuid.UUID
	variant   Variant
	quantity  Quantity
}

func NewLine(productID uuid.UUID, variant Variant, quantity int32) (Line, error) {
	q, err := NewQuantity(quantity)
	if err != nil {
		return Line{}, err
	}
	return Line{
		productID: productID,
		variant:   variant,
		quantity:  q,
	}, nil
}

func (l Line) ProductID() uuid.UUID { return l.productID }
func (l Line) Variant() Variant     { return l.variant }
func (l Line) Quantity() Quantity   { return l.quantity }

// Product is the catalog state a line is priced against. It is a
// point-in-time snapshot; the pricer never reaches back to the catalog.
type Product struct {
	ID                 uuid.UUID
	Name               string
	Brand              string
	Slug               string
	ImageURL           string
	PriceCents         int64
	OriginalPriceCents *int64
	Stock              int32
	Active             bool
}

// PricedLine is a Line with catalog data attached and its total computed.
type PricedLine struct {
	ProductID          uuid.UUID
	Name               string
	Brand              string
	Slug               string
	ImageURL           string
	Size               string
	Color              string
	Quantity           int32
	UnitPriceCents     int64
	OriginalPriceCents *int64
	TotalCents         int64
	// Clamped marks lines whose quantity was reduced to available stock.
	Clamped bool
}

type RemovalReason string

const (
	RemovalNotFound   RemovalReason = "not_found"
	RemovalInactive   RemovalReason = "inactive"
	RemovalOutOfStock RemovalReason = "out_of_stock"
)

// RemovedLine reports a cart entry the pricer dropped. Removals are a
// user-visible notice, never a pricing failure.
type RemovedLine struct {
	ProductID uuid.UUID
	Reason    RemovalReason
}

type PricedCart struct {
	Lines         []PricedLine
	Removed       []RemovedLine
	SubtotalCents int64
}

func (pc PricedCart) IsEmpty() bool {
	return len(pc.Lines) == 0
}
