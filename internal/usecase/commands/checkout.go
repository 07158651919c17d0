package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/coupon"
	"storefront/internal/domain/order"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as seen by checkout. Identity is
// established by the external auth layer; only the claims relevant to
// coupon eligibility travel here.
type Actor struct {
	UserID  uuid.UUID
	NewUser bool
}

// PricedCartResult carries either an applied (or coupon-free) cart or
// the reason the requested coupon could not be applied. A rejection is
// a normal outcome, not an error: the cart prices fine without it.
type PricedCartResult struct {
	Cart      coupon.DiscountedCart
	Rejection *coupon.Rejection
}

type CreateOrderResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type CheckoutCommands interface {
	PriceCart(ctx context.Context, req reqdto.PriceCartRequest, actor Actor) (*PricedCartResult, error)
	ApplyCoupon(ctx context.Context, req reqdto.ApplyCouponRequest, actor Actor) (*PricedCartResult, error)
	CommitOrder(ctx context.Context, req reqdto.CreateOrderRequest, actor Actor, idempotencyKey uuid.UUID) (*CreateOrderResult, error)
}

type checkoutUseCaseImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	clock        clock.Clock
	cfg          config.CheckoutConfig
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	clock clock.Clock,
	cfg config.CheckoutConfig,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:          uow,
		orderQueries: orderQueries,
		clock:        clock,
		cfg:          cfg,
	}
}

func (c *checkoutUseCaseImpl) PriceCart(ctx context.Context, req reqdto.PriceCartRequest, actor Actor) (*PricedCartResult, error) {
	lines, err := c.domainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	priced, err := c.priceAgainstCatalog(ctx, c.uow.CommandReads(), lines)
	if err != nil {
		return nil, err
	}

	c.recordCartAdds(ctx, priced.Lines)

	code := req.GetCouponCode()
	if code == nil {
		return &PricedCartResult{Cart: coupon.WithoutCoupon(priced)}, nil
	}
	return c.applyCouponToCart(ctx, c.uow.CommandReads(), priced, *code, actor)
}

func (c *checkoutUseCaseImpl) ApplyCoupon(ctx context.Context, req reqdto.ApplyCouponRequest, actor Actor) (*PricedCartResult, error) {
	lines, err := c.domainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	priced, err := c.priceAgainstCatalog(ctx, c.uow.CommandReads(), lines)
	if err != nil {
		return nil, err
	}

	return c.applyCouponToCart(ctx, c.uow.CommandReads(), priced, req.CouponCode, actor)
}

func (c *checkoutUseCaseImpl) CommitOrder(
	ctx context.Context,
	req reqdto.CreateOrderRequest,
	actor Actor,
	idempotencyKey uuid.UUID,
) (*CreateOrderResult, error) {
	lines, err := c.domainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	shipping, err := req.Shipping.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	payment, err := req.Payment.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	requestHash := calculateRequestHash(req)
	existing, err := c.claimIdempotencyKey(ctx, idempotencyKey, actor.UserID, requestHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateOrderResult{Order: existing, IsReplayed: true}, nil
	}

	commitCtx, cancel := context.WithTimeout(ctx, c.cfg.CommitTimeout)
	defer cancel()

	var orderID uuid.UUID
	err = c.uow.Within(commitCtx, func(ctx context.Context, tx shared.Tx) error {
		priced, err := c.priceAgainstCatalog(ctx, tx.Reads(), lines)
		if err != nil {
			return err
		}
		if err := ensureCommittable(priced); err != nil {
			return err
		}

		dc := coupon.WithoutCoupon(priced)
		if code := req.GetCouponCode(); code != nil {
			result, err := c.applyCouponToCart(ctx, tx.Reads(), priced, *code, actor)
			if err != nil {
				return err
			}
			if result.Rejection != nil {
				// Inside the commit the advisory usage-limit check can fire
				// after another checkout consumed the last use. That is a
				// lost race, not an ineligible coupon: report it the same
				// way as losing the ConsumeUsage update so the client is
				// told to retry without the coupon.
				if result.Rejection.Reason == coupon.ReasonUsageLimitReached {
					return errs.ErrCouponExhausted
				}
				return result.Rejection
			}
			dc = result.Cart
		}

		now := c.clock.Now()
		ord, err := order.NewOrder(actor.UserID, dc, shipping, payment, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		for _, line := range dc.Cart.Lines {
			ok, err := tx.Products().DecrementStock(ctx, tx.DB(), line.ProductID, line.Quantity)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if !ok {
				return errs.ErrStockExhausted
			}
			if err := tx.Products().IncrementPurchases(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if dc.CouponID != nil {
			ok, err := tx.Coupons().ConsumeUsage(ctx, tx.DB(), *dc.CouponID)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if !ok {
				return errs.ErrCouponExhausted
			}
		}

		orderID, err = tx.Orders().Create(ctx, tx.DB(), ord)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if dc.CouponID != nil {
			if err := tx.Coupons().RecordRedemption(ctx, tx.DB(), *dc.CouponID, actor.UserID, orderID); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		responseHash := calculateIDHash(orderID)
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, actor.UserID, responseHash, orderID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		if commitCtx.Err() != nil && ctx.Err() == nil {
			return nil, errs.Mark(err, errs.ErrPersistenceTimeout)
		}
		return nil, err
	}

	// Read-after-write: serve the committed order from the read side.
	view, err := c.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateOrderResult{Order: view, IsReplayed: false}, nil
}

func (c *checkoutUseCaseImpl) domainLines(reqLines []reqdto.CartLineRequest) ([]cart.Line, error) {
	if len(reqLines) > c.cfg.MaxCartLines {
		return nil, errs.Mark(errs.New("too many cart lines"), errs.ErrDomainValidation)
	}
	lines, err := reqdto.PriceCartRequest{Lines: reqLines}.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return lines, nil
}

func (c *checkoutUseCaseImpl) priceAgainstCatalog(ctx context.Context, reads shared.CommandReads, lines []cart.Line) (cart.PricedCart, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID()
	}

	snapshots, err := reads.ProductsByIDs(ctx, ids)
	if err != nil {
		return cart.PricedCart{}, errs.Mark(err, errs.ErrCatalogUnavailable)
	}

	catalog := make(map[uuid.UUID]cart.Product, len(snapshots))
	for id, snap := range snapshots {
		catalog[id] = cart.Product{
			ID:                 snap.ID,
			Name:               snap.Name,
			Brand:              snap.Brand,
			Slug:               snap.Slug,
			ImageURL:           snap.ImageURL,
			PriceCents:         snap.PriceCents,
			OriginalPriceCents: snap.OriginalPriceCents,
			Stock:              snap.Stock,
			Active:             snap.Active,
		}
	}

	return cart.Price(lines, catalog), nil
}

func (c *checkoutUseCaseImpl) applyCouponToCart(
	ctx context.Context,
	reads shared.CommandReads,
	priced cart.PricedCart,
	code string,
	actor Actor,
) (*PricedCartResult, error) {
	if priced.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}

	snap, err := reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &PricedCartResult{
				Cart:      coupon.WithoutCoupon(priced),
				Rejection: &coupon.Rejection{Reason: coupon.ReasonNotFound},
			}, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	prior, err := reads.RedemptionCount(ctx, snap.ID, actor.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := coupon.NewCoupon(coupon.Spec{
		ID:            snap.ID,
		Code:          snap.Code,
		DiscountKind:  coupon.DiscountKind(snap.DiscountKind),
		DiscountValue: snap.DiscountValue,
		MinOrderCents: snap.MinOrderCents,
		MaxDiscount:   snap.MaxDiscountCents,
		UsageLimit:    snap.UsageLimit,
		PerUserLimit:  snap.PerUserLimit,
		UsedCount:     snap.UsedCount,
		Active:        snap.Active,
		ValidFrom:     snap.ValidFrom,
		ValidUntil:    snap.ValidUntil,
		NewUserOnly:   snap.NewUserOnly,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	usr := coupon.UserContext{
		UserID:           actor.UserID,
		NewUser:          actor.NewUser,
		PriorRedemptions: prior,
	}
	if rejection := entity.Eligibility(c.clock.Now(), priced.SubtotalCents, usr); rejection != nil {
		return &PricedCartResult{Cart: coupon.WithoutCoupon(priced), Rejection: rejection}, nil
	}

	dc, err := coupon.Apply(entity, priced)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return &PricedCartResult{Cart: dc}, nil
}

// claimIdempotencyKey inserts the key; on a duplicate it resolves the
// prior request instead, returning the original order for completed
// checkouts and an in-progress error otherwise.
func (c *checkoutUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*queries.OrderView, error) {
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, "POST /api/orders", requestHash, expiresAt)
	})
	if err == nil {
		return nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultOrderID == nil {
			return nil, errs.Mark(errs.New("completed request missing result order ID"), errs.ErrIdempotencyCheckFailed)
		}
		return c.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, errs.Mark(errs.New("idempotency key reused with different payload"), errs.ErrIdempotencyCheckFailed)
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

// ensureCommittable rejects carts that priced differently from what the
// client submitted: checkout never silently drops or shrinks a line.
func ensureCommittable(priced cart.PricedCart) error {
	// Removed lines win over emptiness: a cart whose only line vanished
	// should surface what happened to that line, not "empty cart".
	for _, removed := range priced.Removed {
		if removed.Reason == cart.RemovalOutOfStock {
			return errs.ErrStockExhausted
		}
		return errs.ErrProductNotFound
	}
	if priced.IsEmpty() {
		return errs.ErrEmptyCart
	}
	for _, line := range priced.Lines {
		if line.Clamped {
			return errs.ErrStockExhausted
		}
	}
	return nil
}

// recordCartAdds bumps the analytics counter per priced line. Counter
// failures never fail pricing.
func (c *checkoutUseCaseImpl) recordCartAdds(ctx context.Context, lines []cart.PricedLine) {
	for _, line := range lines {
		productID := line.ProductID
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Products().IncrementCartAdds(ctx, tx.DB(), productID)
		})
		if err != nil {
			slog.Warn("failed to record cart add", "product_id", productID, "error", err.Error())
		}
	}
}

func calculateRequestHash(req reqdto.CreateOrderRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
