package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const orderByIDSQL = `
SELECT id, number, user_id, subtotal_cents, discount_cents, grand_total_cents,
       coupon_id, coupon_code, status,
       shipping_name, shipping_line1, shipping_line2, shipping_city, shipping_state,
       shipping_postal, shipping_country, shipping_phone,
       payment_method, payment_ref,
       created_at, updated_at
FROM orders
WHERE id = $1
`

const orderItemsSQL = `
SELECT product_id, name, brand, slug, image_url, size, color,
       quantity, unit_price_cents, discount_cents, total_cents
FROM order_items
WHERE order_id = $1
ORDER BY position
`

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		view       queries.OrderView
		couponID   pgtype.UUID
		couponCode pgtype.Text
		line2      pgtype.Text
		state      pgtype.Text
		phone      pgtype.Text
		paymentRef pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, orderByIDSQL, id).Scan(
		&view.ID,
		&view.Number,
		&view.UserID,
		&view.SubtotalCents,
		&view.DiscountCents,
		&view.GrandTotalCents,
		&couponID,
		&couponCode,
		&view.Status,
		&view.ShippingName,
		&view.ShippingLine1,
		&line2,
		&view.ShippingCity,
		&state,
		&view.ShippingPostal,
		&view.ShippingCountry,
		&phone,
		&view.PaymentMethod,
		&paymentRef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	view.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	view.CouponCode = pgconv.StringPtrFromPgtype(couponCode)
	view.ShippingLine2 = pgconv.StringPtrFromPgtype(line2)
	view.ShippingState = pgconv.StringPtrFromPgtype(state)
	view.ShippingPhone = pgconv.StringPtrFromPgtype(phone)
	view.PaymentRef = pgconv.StringPtrFromPgtype(paymentRef)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, orderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.Brand,
			&item.Slug,
			&item.ImageURL,
			&item.Size,
			&item.Color,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.DiscountCents,
			&item.TotalCents,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order item rows", err)
	}

	return items, nil
}

const ordersByUserSQL = `
SELECT o.id, o.number, o.status, o.grand_total_cents, o.created_at,
       (SELECT count(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
FROM orders o
WHERE o.user_id = $1
ORDER BY o.created_at DESC, o.id DESC
LIMIT $2
`

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, ordersByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query orders by user", err)
	}
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		var (
			item      queries.OrderListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID,
			&item.Number,
			&item.Status,
			&item.GrandTotalCents,
			&createdAt,
			&item.ItemCount,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order list rows", err)
	}

	return result, nil
}

const orderSnapshotSQL = `
SELECT id, user_id, status, coupon_id FROM orders WHERE id = $1
`

// FindSnapshotByID is the command-side minimal read used by status
// transitions.
func (r *OrderReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	var (
		snap     shared.OrderSnapshot
		couponID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, orderSnapshotSQL, id).Scan(&snap.ID, &snap.UserID, &snap.Status, &couponID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order snapshot", err)
	}
	snap.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	return &snap, nil
}
