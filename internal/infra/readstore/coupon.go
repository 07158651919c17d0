package readstore

import (
	"context"
	"strings"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

const couponByCodeSQL = `
SELECT id, code, discount_kind, discount_value, min_order_cents, max_discount_cents,
       usage_limit, per_user_limit, used_count, active, valid_from, valid_until, new_user_only
FROM coupons
WHERE code = $1
`

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var (
		snap        shared.CouponSnapshot
		minOrder    pgtype.Int8
		maxDiscount pgtype.Int8
		usageLimit  pgtype.Int4
		perUser     pgtype.Int4
		validFrom   pgtype.Timestamptz
		validUntil  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, couponByCodeSQL, normalized).Scan(
		&snap.ID,
		&snap.Code,
		&snap.DiscountKind,
		&snap.DiscountValue,
		&minOrder,
		&maxDiscount,
		&usageLimit,
		&perUser,
		&snap.UsedCount,
		&snap.Active,
		&validFrom,
		&validUntil,
		&snap.NewUserOnly,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	snap.MinOrderCents = pgconv.Int64PtrFromPgtype(minOrder)
	snap.MaxDiscountCents = pgconv.Int64PtrFromPgtype(maxDiscount)
	snap.UsageLimit = pgconv.Int32PtrFromPgtype(usageLimit)
	snap.PerUserLimit = pgconv.Int32PtrFromPgtype(perUser)
	snap.ValidFrom = pgconv.TimePtrFromPgtype(validFrom)
	snap.ValidUntil = pgconv.TimePtrFromPgtype(validUntil)

	return &snap, nil
}

const redemptionCountSQL = `
SELECT count(*) FROM coupon_redemptions
WHERE coupon_id = $1 AND user_id = $2
`

func (r *CouponReadStore) RedemptionCount(ctx context.Context, couponID, userID uuid.UUID) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, redemptionCountSQL, couponID, userID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon redemptions", err)
	}
	return count, nil
}
