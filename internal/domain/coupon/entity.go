package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsedCountOverLimit   = errors.New("used count exceeds usage limit")
	ErrInvalidValidityRange = errors.New("validFrom must not be after validUntil")
)

// RejectionReason is the closed set of reasons applyCoupon can fail.
// The order of the constants below is also the order checks run in, so a
// coupon failing several rules always reports the same reason.
type RejectionReason string

const (
	ReasonNotFound            RejectionReason = "not_found"
	ReasonInactive            RejectionReason = "inactive"
	ReasonExpired             RejectionReason = "expired"
	ReasonNewUserOnly         RejectionReason = "new_user_only"
	ReasonBelowMinimumOrder   RejectionReason = "below_minimum_order"
	ReasonUsageLimitReached   RejectionReason = "usage_limit_reached"
	ReasonPerUserLimitReached RejectionReason = "per_user_limit_reached"
)

// Rejection is a user-correctable coupon failure, surfaced verbatim.
type Rejection struct {
	Reason RejectionReason
}

func (r *Rejection) Error() string {
	return "coupon rejected: " + string(r.Reason)
}

// UserContext is what the validator needs to know about the requesting
// user. Identity itself is established by the external auth layer.
type UserContext struct {
	UserID uuid.UUID
	// NewUser is true for first-time customers.
	NewUser bool
	// PriorRedemptions is how many times this user already redeemed the
	// coupon being validated.
	PriorRedemptions int32
}

type Coupon struct {
	id            uuid.UUID
	code          Code
	discount      Discount
	minOrderCents *int64
	maxDiscount   *int64
	usageLimit    *int32
	perUserLimit  *int32
	usedCount     int32
	active        bool
	validFrom     *time.Time
	validUntil    *time.Time
	newUserOnly   bool
	createdAt     time.Time
	updatedAt     time.Time
}

type Spec struct {
	ID            uuid.UUID
	Code          string
	DiscountKind  DiscountKind
	DiscountValue int64
	MinOrderCents *int64
	MaxDiscount   *int64
	UsageLimit    *int32
	PerUserLimit  *int32
	UsedCount     int32
	Active        bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	NewUserOnly   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewCoupon(spec Spec) (*Coupon, error) {
	code, err := NewCode(spec.Code)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(spec.DiscountKind, spec.DiscountValue)
	if err != nil {
		return nil, err
	}

	if spec.UsageLimit != nil && spec.UsedCount > *spec.UsageLimit {
		return nil, ErrUsedCountOverLimit
	}
	if spec.ValidFrom != nil && spec.ValidUntil != nil && spec.ValidFrom.After(*spec.ValidUntil) {
		return nil, ErrInvalidValidityRange
	}

	return &Coupon{
		id:            spec.ID,
		code:          code,
		discount:      discount,
		minOrderCents: spec.MinOrderCents,
		maxDiscount:   spec.MaxDiscount,
		usageLimit:    spec.UsageLimit,
		perUserLimit:  spec.PerUserLimit,
		usedCount:     spec.UsedCount,
		active:        spec.Active,
		validFrom:     spec.ValidFrom,
		validUntil:    spec.ValidUntil,
		newUserOnly:   spec.NewUserOnly,
		createdAt:     spec.CreatedAt,
		updatedAt:     spec.UpdatedAt,
	}, nil
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) MinOrderCents() *int64 { return c.minOrderCents }
func (c *Coupon) MaxDiscount() *int64   { return c.maxDiscount }
func (c *Coupon) UsageLimit() *int32    { return c.usageLimit }
func (c *Coupon) PerUserLimit() *int32  { return c.perUserLimit }
func (c *Coupon) UsedCount() int32      { return c.usedCount }
func (c *Coupon) Active() bool          { return c.active }
func (c *Coupon) NewUserOnly() bool     { return c.newUserOnly }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time {
	return c.validUntil
}

func (c *Coupon) isWithinWindow(now time.Time) bool {
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return false
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return false
	}
	return true
}

// Eligibility checks every rule in precedence order and reports the first
// failure. It is advisory only: the counters it reads may be stale under
// concurrency, and the real usage enforcement is the atomic conditional
// update performed at order commit.
//
// Minimum-order eligibility is inclusive: a subtotal exactly equal to the
// minimum qualifies.
func (c *Coupon) Eligibility(now time.Time, subtotalCents int64, usr UserContext) *Rejection {
	if !c.active {
		return &Rejection{Reason: ReasonInactive}
	}
	if !c.isWithinWindow(now) {
		return &Rejection{Reason: ReasonExpired}
	}
	if c.newUserOnly && !usr.NewUser {
		return &Rejection{Reason: ReasonNewUserOnly}
	}
	if c.minOrderCents != nil && subtotalCents < *c.minOrderCents {
		return &Rejection{Reason: ReasonBelowMinimumOrder}
	}
	if c.usageLimit != nil && c.usedCount >= *c.usageLimit {
		return &Rejection{Reason: ReasonUsageLimitReached}
	}
	if c.perUserLimit != nil && usr.PriorRedemptions >= *c.perUserLimit {
		return &Rejection{Reason: ReasonPerUserLimitReached}
	}
	return nil
}
