package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ProductSnapshot struct {
	ID                 uuid.UUID
	Name               string
	Brand              string
	Slug               string
	ImageURL           string
	PriceCents         int64
	OriginalPriceCents *int64
	Stock              int32
	Active             bool
}

type CouponSnapshot struct {
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

// Minimal snapshot for command read operations
type OrderSnapshot struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Status   string
	CouponID *uuid.UUID
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}
