package cart

import (
	"github.com/google/uuid"
)

// Price computes a PricedCart from client lines and a catalog snapshot.
// Prices come exclusively from the snapshot; quantities are clamped to
// stock and lines whose product is missing, inactive or out of stock are
// moved to the removal list. The subtotal is the exact sum of line totals
// in minor currency units, so repeated pricing of the same inputs can
// never drift.
func Price(lines []Line, catalog map[uuid.UUID]Product) PricedCart {
	pc := PricedCart{
		Lines:   make([]PricedLine, 0, len(lines)),
		Removed: nil,
	}

	for _, line := range lines {
		product, ok := catalog[line.ProductID()]
		if !ok {
			pc.Removed = append(pc.Removed, RemovedLine{ProductID: line.ProductID(), Reason: RemovalNotFound})
			continue
		}
		if !product.Active {
			pc.Removed = append(pc.Removed, RemovedLine{ProductID: line.ProductID(), Reason: RemovalInactive})
			continue
		}
		if product.Stock <= 0 {
			pc.Removed = append(pc.Removed, RemovedLine{ProductID: line.ProductID(), Reason: RemovalOutOfStock})
			continue
		}

		qty := line.Quantity().ClampTo(product.Stock)
		clamped := qty.Value() < line.Quantity().Value()

		total := product.PriceCents * int64(qty.Value())
		pc.Lines = append(pc.Lines, PricedLine{
			ProductID:          product.ID,
			Name:               product.Name,
			Brand:              product.Brand,
			Slug:               product.Slug,
			ImageURL:           product.ImageURL,
			Size:               line.Variant().Size(),
			Color:              line.Variant().Color(),
			Quantity:           qty.Value(),
			UnitPriceCents:     product.PriceCents,
			OriginalPriceCents: product.OriginalPriceCents,
			TotalCents:         total,
			Clamped:            clamped,
		})
		pc.SubtotalCents += total
	}

	return pc
}
