package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

const productByIDsSQL = `
SELECT id, name, brand, slug, image_url, price_cents, original_price_cents, stock, active
FROM products
WHERE id = ANY($1)
`

// FindByIDs returns the catalog state for the requested products. IDs
// without a row are simply absent from the result map; the cart pricer
// turns those into removal notices.
func (r *ProductReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*shared.ProductSnapshot, error) {
	rows, err := r.db.Query(ctx, productByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query products by IDs", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*shared.ProductSnapshot, len(ids))
	for rows.Next() {
		var (
			snap     shared.ProductSnapshot
			original pgtype.Int8
		)
		if err := rows.Scan(
			&snap.ID,
			&snap.Name,
			&snap.Brand,
			&snap.Slug,
			&snap.ImageURL,
			&snap.PriceCents,
			&original,
			&snap.Stock,
			&snap.Active,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		snap.OriginalPriceCents = pgconv.Int64PtrFromPgtype(original)
		result[snap.ID] = &snap
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product rows", err)
	}

	return result, nil
}
