package shared

import (
	"context"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Coupons() CouponRepository
	Products() ProductRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	RedemptionCount(ctx context.Context, couponID, userID uuid.UUID) (int32, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	// UpdateStatus performs a compare-and-set on the status column; it
	// reports KindConflict when the order moved away from `from` in the
	// meantime.
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to order.Status, now time.Time) error
}

type CouponRepository interface {
	// ConsumeUsage is the true usage-limit enforcement point: an atomic
	// conditional increment that reports false when no usage slot is left.
	ConsumeUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) (bool, error)
	// ReleaseUsage undoes one consumed slot (order cancellation).
	ReleaseUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) error
	RecordRedemption(ctx context.Context, tx db.DBTX, couponID, userID, orderID uuid.UUID) error
}

type ProductRepository interface {
	// DecrementStock reports false when less than qty is on hand, in the
	// same atomic-conditional style as coupon usage.
	DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) (bool, error)
	RestoreStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) error
	IncrementPurchases(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int32) error
	IncrementCartAdds(ctx context.Context, tx db.DBTX, productID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseHash string, resultOrderID uuid.UUID) error
}
