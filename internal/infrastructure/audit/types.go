package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the audit trail.
const (
	ActionPaymentVerified = "payment_verified"
	ActionPaymentRejected = "payment_rejected"
	ActionSellerApproved  = "seller_approved"
	ActionItemActivated   = "item_activated"
	ActionItemDeactivated = "item_deactivated"
	ActionUserApproved    = "user_approved"
	ActionUserRevoked     = "user_revoked"
)

// Entities referenced by audit entries.
const (
	EntityPayment = "payment"
	EntityItem    = "item"
	EntityUser    = "user"
)

// Entry records a single admin-triggered state change.
type Entry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Actor == "" {
		e.Actor = "admin"
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
