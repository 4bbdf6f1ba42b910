package domain

import "time"

// Claim kinds.
const (
	PaymentKindListingFee   = "listing_fee"
	PaymentKindSubscription = "subscription"
	PaymentKindCommission   = "commission"
)

// Claim statuses. Verified and rejected are terminal.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// Payment represents a user-submitted claim that an off-system till payment
// occurred. It stays pending until an admin verifies or rejects it, exactly
// once. Listing-fee claims carry the item they were paid for.
type Payment struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ItemID          string     `json:"item_id,omitempty"`
	Amount          float64    `json:"amount"`
	TillNumber      string     `json:"till_number"`
	TransactionCode string     `json:"transaction_code"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

// IsDecided reports whether the claim reached a terminal status.
func (p *Payment) IsDecided() bool {
	return p != nil && p.Status != PaymentPending
}

// ValidPaymentKind reports whether a claim kind is recognised.
func ValidPaymentKind(kind string) bool {
	switch kind {
	case PaymentKindListingFee, PaymentKindSubscription, PaymentKindCommission:
		return true
	}
	return false
}
