package writerepo

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

const consumeCouponUsageSQL = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND (usage_limit IS NULL OR used_count < usage_limit)
`

// ConsumeUsage claims one usage slot. Concurrent claimers race on the
// row lock; losers see zero rows affected and must surface exhaustion.
func (r *CouponRepository) ConsumeUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, consumeCouponUsageSQL, couponID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume coupon usage", err)
	}
	return tag.RowsAffected() > 0, nil
}

const releaseCouponUsageSQL = `
UPDATE coupons
SET used_count = GREATEST(used_count - 1, 0), updated_at = now()
WHERE id = $1
`

func (r *CouponRepository) ReleaseUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) error {
	if _, err := tx.Exec(ctx, releaseCouponUsageSQL, couponID); err != nil {
		return infra.WrapRepoErr("failed to release coupon usage", err)
	}
	return nil
}

const insertRedemptionSQL = `
INSERT INTO coupon_redemptions (id, coupon_id, user_id, order_id, redeemed_at)
VALUES ($1, $2, $3, $4, now())
`

func (r *CouponRepository) RecordRedemption(ctx context.Context, tx db.DBTX, couponID, userID, orderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, insertRedemptionSQL, uuid.New(), couponID, userID, orderID); err != nil {
		return infra.WrapRepoErr("failed to record coupon redemption", err)
	}
	return nil
}
