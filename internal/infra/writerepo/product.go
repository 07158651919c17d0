package writerepo

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const decrementStockSQL = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
`

// DecrementStock reserves stock with a guarded decrement; the WHERE
// clause keeps stock from ever going negative under concurrency.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) (bool, error) {
	tag, err := tx.Exec(ctx, decrementStockSQL, productID, qty)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement product stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

const restoreStockSQL = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1
`

func (r *ProductRepository) RestoreStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) error {
	if _, err := tx.Exec(ctx, restoreStockSQL, productID, qty); err != nil {
		return infra.WrapRepoErr("failed to restore product stock", err)
	}
	return nil
}

const incrementPurchasesSQL = `
UPDATE products
SET purchases = purchases + $2
WHERE id = $1
`

func (r *ProductRepository) IncrementPurchases(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) error {
	if _, err := tx.Exec(ctx, incrementPurchasesSQL, productID, qty); err != nil {
		return infra.WrapRepoErr("failed to increment product purchases", err)
	}
	return nil
}

const incrementCartAddsSQL = `
UPDATE products
SET cart_adds = cart_adds + 1
WHERE id = $1
`

func (r *ProductRepository) IncrementCartAdds(ctx context.Context, tx db.DBTX, productID uuid.UUID) error {
	if _, err := tx.Exec(ctx, incrementCartAddsSQL, productID); err != nil {
		return infra.WrapRepoErr("failed to increment product cart adds", err)
	}
	return nil
}
