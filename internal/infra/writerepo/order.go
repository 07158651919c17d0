package writerepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const insertOrderSQL = `
INSERT INTO orders (
	id, number, user_id, subtotal_cents, discount_cents, grand_total_cents,
	coupon_id, coupon_code, status,
	shipping_name, shipping_line1, shipping_line2, shipping_city, shipping_state,
	shipping_postal, shipping_country, shipping_phone,
	payment_method, payment_ref,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)
`

const insertOrderItemSQL = `
INSERT INTO order_items (
	order_id, position, product_id, name, brand, slug, image_url, size, color,
	quantity, unit_price_cents, discount_cents, total_cents
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
)
`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	shipping := o.Shipping()
	payment := o.Payment()

	_, err := tx.Exec(ctx, insertOrderSQL,
		o.ID(),
		o.Number().String(),
		o.UserID(),
		o.SubtotalCents(),
		o.DiscountCents(),
		o.GrandTotalCents(),
		pgconv.UUIDPtrToPgtype(o.CouponID()),
		pgconv.StringPtrToPgtype(o.CouponCode()),
		o.Status().String(),
		shipping.FullName(),
		shipping.Line1(),
		nullableString(shipping.Line2()),
		shipping.City(),
		nullableString(shipping.State()),
		shipping.PostalCode(),
		shipping.Country(),
		nullableString(shipping.Phone()),
		payment.Method(),
		nullableString(payment.Reference()),
		o.CreatedAt(),
		o.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("order number already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert order", err)
	}

	for i, item := range o.Items() {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			o.ID(),
			i,
			item.ProductID(),
			item.Name(),
			item.Brand(),
			item.Slug(),
			item.ImageURL(),
			item.Size(),
			item.Color(),
			item.Quantity(),
			item.UnitPriceCents(),
			item.DiscountCents(),
			item.TotalCents(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert order item", err)
		}
	}

	return o.ID(), nil
}

const updateOrderStatusSQL = `
UPDATE orders SET status = $1, updated_at = $2
WHERE id = $3 AND status = $4
`

// UpdateStatus is a compare-and-set: the transition only lands if the
// order is still in the expected source state.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to order.Status, now time.Time) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, to.String(), now, id, from.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
