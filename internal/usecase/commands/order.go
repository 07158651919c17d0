package commands

import (
	"context"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderCommands interface {
	// UpdateStatus moves an order along the status machine. Callers are
	// trusted (back-office); ownership is not checked.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next string) (*queries.OrderView, error)
	// Cancel is the customer-facing cancellation: owner-only, allowed
	// from any non-terminal state, and it returns stock and coupon usage.
	Cancel(ctx context.Context, actor uuid.UUID, orderID uuid.UUID) (*queries.OrderView, error)
}

type orderUseCaseImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	clock        clock.Clock
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	clock clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:          uow,
		orderQueries: orderQueries,
		clock:        clock,
	}
}

func (o *orderUseCaseImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, next string) (*queries.OrderView, error) {
	nextStatus, err := order.NewStatus(next)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrOrderNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		current, err := order.NewStatus(snap.Status)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := current.Transition(nextStatus); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusTransition)
		}

		return o.applyTransition(ctx, tx, orderID, current, nextStatus)
	})
	if err != nil {
		return nil, err
	}

	return o.orderQueries.GetByIDSystem(ctx, orderID)
}

func (o *orderUseCaseImpl) Cancel(ctx context.Context, actor uuid.UUID, orderID uuid.UUID) (*queries.OrderView, error) {
	// Items and coupon linkage are immutable after commit, so reading the
	// view outside the transaction is safe; only the status races.
	view, err := o.orderQueries.GetByID(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	current, err := order.NewStatus(view.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if _, err := current.Transition(order.StatusCancelled); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStatusTransition)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := o.applyTransition(ctx, tx, orderID, current, order.StatusCancelled); err != nil {
			return err
		}

		for _, item := range view.Items {
			if err := tx.Products().RestoreStock(ctx, tx.DB(), item.ProductID, item.Quantity); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if view.CouponID != nil {
			if err := tx.Coupons().ReleaseUsage(ctx, tx.DB(), *view.CouponID); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return o.orderQueries.GetByIDSystem(ctx, orderID)
}

// applyTransition performs the compare-and-set status update; losing the
// race to another transition reports it as an invalid transition.
func (o *orderUseCaseImpl) applyTransition(ctx context.Context, tx shared.Tx, orderID uuid.UUID, from, to order.Status) error {
	if err := tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, from, to, o.clock.Now()); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, errs.ErrInvalidStatusTransition)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
