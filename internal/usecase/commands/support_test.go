//go:build unit

package commands_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. Every
// repository method takes the store mutex, so the conditional updates
// (stock decrement, coupon usage) are atomic the same way the SQL ones
// are. Transactions are not rolled back; tests that exercise failure
// paths assert on the effects they care about, not on full atomicity.
type fakeStore struct {
	mu          sync.Mutex
	products    map[uuid.UUID]shared.ProductSnapshot
	coupons     map[uuid.UUID]shared.CouponSnapshot
	redemptions map[uuid.UUID]map[uuid.UUID]int32
	idem        map[string]*shared.IdempotencyRecord
	orders      map[uuid.UUID]*queries.OrderView
	cartAdds    map[uuid.UUID]int32
	purchases   map[uuid.UUID]int32

	// staleCouponUsedCount, when set, is reported by CouponByCode in
	// place of the stored counter, simulating a read that raced a commit.
	staleCouponUsedCount *int32
	// productsErr fails every catalog read when set.
	productsErr error
	// beforeUpdateStatus runs just before the status compare-and-set,
	// giving tests a window to race it.
	beforeUpdateStatus func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[uuid.UUID]shared.ProductSnapshot),
		coupons:     make(map[uuid.UUID]shared.CouponSnapshot),
		redemptions: make(map[uuid.UUID]map[uuid.UUID]int32),
		idem:        make(map[string]*shared.IdempotencyRecord),
		orders:      make(map[uuid.UUID]*queries.OrderView),
		cartAdds:    make(map[uuid.UUID]int32),
		purchases:   make(map[uuid.UUID]int32),
	}
}

func idemKey(key, userID uuid.UUID) string {
	return key.String() + "/" + userID.String()
}

func sharedProduct(id uuid.UUID, priceCents int64, stock int32) shared.ProductSnapshot {
	return shared.ProductSnapshot{
		ID:         id,
		Name:       "Test Product",
		Brand:      "Acme",
		Slug:       "test-product",
		ImageURL:   "https://img.example/p.jpg",
		PriceCents: priceCents,
		Stock:      stock,
		Active:     true,
	}
}

// fakeCouponSpec mirrors the coupon row the store hands out.
type fakeCouponSpec struct {
	ID               uuid.UUID
	Code             string
	DiscountKind     string
	DiscountValue    int64
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

func (s fakeCouponSpec) snapshot() shared.CouponSnapshot {
	return shared.CouponSnapshot{
		ID:               s.ID,
		Code:             s.Code,
		DiscountKind:     s.DiscountKind,
		DiscountValue:    s.DiscountValue,
		MinOrderCents:    s.MinOrderCents,
		MaxDiscountCents: s.MaxDiscountCents,
		UsageLimit:       s.UsageLimit,
		PerUserLimit:     s.PerUserLimit,
		UsedCount:        s.UsedCount,
		Active:           s.Active,
		ValidFrom:        s.ValidFrom,
		ValidUntil:       s.ValidUntil,
		NewUserOnly:      s.NewUserOnly,
	}
}

func (s *fakeStore) addProduct(p shared.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *fakeStore) addCoupon(c shared.CouponSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[c.ID] = c
}

func (s *fakeStore) couponUsedCount(id uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[id].UsedCount
}

func (s *fakeStore) productStock(id uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// UnitOfWork

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx{s})
}

func (s *fakeStore) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *fakeStore) CommandReads() shared.CommandReads {
	return fakeReads{s}
}

type fakeTx struct{ s *fakeStore }

func (t fakeTx) Orders() shared.OrderRepository           { return fakeOrderRepo{t.s} }
func (t fakeTx) Coupons() shared.CouponRepository         { return fakeCouponRepo{t.s} }
func (t fakeTx) Products() shared.ProductRepository       { return fakeProductRepo{t.s} }
func (t fakeTx) Idempotency() shared.IdempotencyRepository { return fakeIdemRepo{t.s} }
func (t fakeTx) Reads() shared.CommandReads               { return fakeReads{t.s} }
func (t fakeTx) DB() db.DBTX                              { return nil }

type fakeReads struct{ s *fakeStore }

func (r fakeReads) ProductsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*shared.ProductSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.productsErr != nil {
		return nil, r.s.productsErr
	}
	out := make(map[uuid.UUID]*shared.ProductSnapshot)
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			snap := p
			out[id] = &snap
		}
	}
	return out, nil
}

func (r fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range r.s.coupons {
		if c.Code == normalized {
			snap := c
			if r.s.staleCouponUsedCount != nil {
				snap.UsedCount = *r.s.staleCouponUsedCount
			}
			return &snap, nil
		}
	}
	return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
}

func (r fakeReads) RedemptionCount(_ context.Context, couponID, userID uuid.UUID) (int32, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.redemptions[couponID][userID], nil
}

func (r fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	view, ok := r.s.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return &shared.OrderSnapshot{
		ID:       view.ID,
		UserID:   view.UserID,
		Status:   view.Status,
		CouponID: view.CouponID,
	}, nil
}

func (r fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.idem[idemKey(key, userID)]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	copied := *rec
	return &copied, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r fakeOrderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]queries.OrderItemView, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = queries.OrderItemView{
			ProductID:      item.ProductID(),
			Name:           item.Name(),
			Brand:          item.Brand(),
			Slug:           item.Slug(),
			ImageURL:       item.ImageURL(),
			Size:           item.Size(),
			Color:          item.Color(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			DiscountCents:  item.DiscountCents(),
			TotalCents:     item.TotalCents(),
		}
	}

	shipping := o.Shipping()
	payment := o.Payment()
	r.s.orders[o.ID()] = &queries.OrderView{
		ID:              o.ID(),
		Number:          o.Number().String(),
		UserID:          o.UserID(),
		Items:           items,
		SubtotalCents:   o.SubtotalCents(),
		DiscountCents:   o.DiscountCents(),
		GrandTotalCents: o.GrandTotalCents(),
		CouponID:        o.CouponID(),
		CouponCode:      o.CouponCode(),
		Status:          o.Status().String(),
		ShippingName:    shipping.FullName(),
		ShippingLine1:   shipping.Line1(),
		ShippingCity:    shipping.City(),
		ShippingPostal:  shipping.PostalCode(),
		ShippingCountry: shipping.Country(),
		PaymentMethod:   payment.Method(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	return o.ID(), nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from, to order.Status, now time.Time) error {
	if r.s.beforeUpdateStatus != nil {
		r.s.beforeUpdateStatus()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	view, ok := r.s.orders[id]
	if !ok || view.Status != from.String() {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	view.Status = to.String()
	view.UpdatedAt = now
	return nil
}

type fakeCouponRepo struct{ s *fakeStore }

func (r fakeCouponRepo) ConsumeUsage(_ context.Context, _ db.DBTX, couponID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[couponID]
	if !ok {
		return false, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	r.s.coupons[couponID] = c
	return true, nil
}

func (r fakeCouponRepo) ReleaseUsage(_ context.Context, _ db.DBTX, couponID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[couponID]
	if ok && c.UsedCount > 0 {
		c.UsedCount--
		r.s.coupons[couponID] = c
	}
	return nil
}

func (r fakeCouponRepo) RecordRedemption(_ context.Context, _ db.DBTX, couponID, userID, _ uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.redemptions[couponID] == nil {
		r.s.redemptions[couponID] = make(map[uuid.UUID]int32)
	}
	r.s.redemptions[couponID][userID]++
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r fakeProductRepo) DecrementStock(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int32) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.s.products[productID] = p
	return true, nil
}

func (r fakeProductRepo) RestoreStock(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int32) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if ok {
		p.Stock += qty
		r.s.products[productID] = p
	}
	return nil
}

func (r fakeProductRepo) IncrementPurchases(_ context.Context, _ db.DBTX, productID uuid.UUID, qty int32) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases[productID] += qty
	return nil
}

func (r fakeProductRepo) IncrementCartAdds(_ context.Context, _ db.DBTX, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cartAdds[productID]++
	return nil
}

type fakeIdemRepo struct{ s *fakeStore }

func (r fakeIdemRepo) TryInsert(_ context.Context, _ db.DBTX, key, userID uuid.UUID, _, requestHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := idemKey(key, userID)
	if _, ok := r.s.idem[k]; ok {
		return infra.WrapRepoErr("idempotency key already claimed", nil, infra.KindDuplicateKey)
	}
	r.s.idem[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r fakeIdemRepo) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key, userID uuid.UUID, _ string, resultOrderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.idem[idemKey(key, userID)]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	rec.Status = "completed"
	id := resultOrderID
	rec.ResultOrderID = &id
	return nil
}

// fakeOrderViewRepo backs the real read-side queries with the store.
type fakeOrderViewRepo struct{ s *fakeStore }

func (r fakeOrderViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	view, ok := r.s.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	copied := *view
	return &copied, nil
}

func (r fakeOrderViewRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*queries.OrderListItem
	for _, view := range r.s.orders {
		if view.UserID != userID {
			continue
		}
		out = append(out, &queries.OrderListItem{
			ID:              view.ID,
			Number:          view.Number,
			Status:          view.Status,
			ItemCount:       int32(len(view.Items)),
			GrandTotalCents: view.GrandTotalCents,
			CreatedAt:       view.CreatedAt,
		})
		if int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}
