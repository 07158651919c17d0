package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Catalog errors
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// Cart errors
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("invalid quantity")

	// Coupon errors
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponRejected  = errors.New("coupon rejected")
	ErrCouponExhausted = errors.New("coupon usage limit exhausted")

	// Order errors
	ErrOrderNotFound           = errors.New("order not found")
	ErrStockExhausted          = errors.New("insufficient stock")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrPersistenceTimeout      = errors.New("persistence timeout")
)
