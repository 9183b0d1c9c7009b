package domain

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	PropertyStatusPending  = "pending"
	PropertyStatusVerified = "verified"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)
