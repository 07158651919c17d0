//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestProduct(t *testing.T, db DBLike, name string, priceCents int64, stock int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + productID.String()[:8]

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO products (id, name, slug, price_cents, stock, active) VALUES ($1, $2, $3, $4, $5, true)",
		productID, name, slug, priceCents, stock)
	require.NoError(t, err)

	return productID
}

// CouponParams covers every coupon column the tests care about; zero values
// leave the optional columns NULL.
type CouponParams struct {
	Code             string
	Kind             string
	Value            int64
	MinOrderCents    *int64
	MaxDiscountCents *int64
	UsageLimit       *int32
	PerUserLimit     *int32
	UsedCount        int32
	Active           bool
	ValidFrom        *time.Time
	ValidUntil       *time.Time
	NewUserOnly      bool
}

func PercentageCoupon(code string, percent int64) CouponParams {
	return CouponParams{Code: code, Kind: "percentage", Value: percent, Active: true}
}

func FixedCoupon(code string, amountCents int64) CouponParams {
	return CouponParams{Code: code, Kind: "fixed", Value: amountCents, Active: true}
}

func CreateTestCoupon(t *testing.T, db DBLike, p CouponParams) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO coupons (
			id, code, discount_kind, discount_value,
			min_order_cents, max_discount_cents,
			usage_limit, per_user_limit, used_count,
			active, valid_from, valid_until, new_user_only
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		couponID, p.Code, p.Kind, p.Value,
		p.MinOrderCents, p.MaxDiscountCents,
		p.UsageLimit, p.PerUserLimit, p.UsedCount,
		p.Active, p.ValidFrom, p.ValidUntil, p.NewUserOnly)
	require.NoError(t, err)

	return couponID
}

func CouponUsedCount(t *testing.T, db DBLike, couponID uuid.UUID) int32 {
	t.Helper()

	var used int32
	err := db.QueryRow(context.Background(), "SELECT used_count FROM coupons WHERE id = $1", couponID).Scan(&used)
	require.NoError(t, err)
	return used
}

func ProductStock(t *testing.T, db DBLike, productID uuid.UUID) int32 {
	t.Helper()

	var stock int32
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each sub-test starts from an empty database
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
