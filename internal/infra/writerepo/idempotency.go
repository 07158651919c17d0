package writerepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const insertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, status, request_hash, expires_at, created_at)
VALUES ($1, $2, $3, 'processing', $4, $5, now())
`

// TryInsert claims an idempotency key. A duplicate-key failure means a
// request with this key is already in flight or done; the caller reads
// the existing record and acts on its status.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := tx.Exec(ctx, insertIdempotencyKeySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("idempotency key already claimed", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return nil
}

const completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'completed', response_hash = $3, result_order_id = $4
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseHash string, resultOrderID uuid.UUID) error {
	if _, err := tx.Exec(ctx, completeIdempotencyKeySQL, key, userID, responseHash, resultOrderID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
