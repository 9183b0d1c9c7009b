package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelEmail   NotificationChannel = "EMAIL"
	ChannelWebPush NotificationChannel = "WEB_PUSH"
	ChannelInApp   NotificationChannel = "IN_APP"
)

// NotificationStatus only moves forward: PENDING -> SENT or PENDING -> FAILED.
// Retries are not this subsystem's concern.
type NotificationStatus string

const (
	StatusPending NotificationStatus = "PENDING"
	StatusSent    NotificationStatus = "SENT"
	StatusFailed  NotificationStatus = "FAILED"
)

type NotificationType string

const (
	NotificationNewMessage          NotificationType = "new_message"
	NotificationFavoriteUnavailable NotificationType = "favorite_unavailable"
	NotificationPropertyVerified    NotificationType = "property_verified"
	NotificationPropertyApproved    NotificationType = "property_approved"
	NotificationPropertyRejected    NotificationType = "property_rejected"
	NotificationNewListingMatch     NotificationType = "new_listing_match"
	NotificationInactivityReminder  NotificationType = "inactivity_reminder"
)

// Notification is one delivery record on one channel. A logical event that
// fans out to N channels produces N rows, never one shared row.
type Notification struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Type      NotificationType    `json:"type"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Data      json.RawMessage     `json:"data,omitempty"`
	Channel   NotificationChannel `json:"channel"`
	Status    NotificationStatus  `json:"status"`
	IsRead    bool                `json:"is_read"`
	SentAt    *time.Time          `json:"sent_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// NotificationPreference covers EMAIL and WEB_PUSH only; IN_APP is always on
// and has no preference row. A missing row means all channels enabled.
type NotificationPreference struct {
	UserID         uuid.UUID        `json:"user_id"`
	Type           NotificationType `json:"type"`
	EmailEnabled   bool             `json:"email_enabled"`
	WebPushEnabled bool             `json:"web_push_enabled"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
