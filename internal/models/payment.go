package models

import "github.com/shopspring/decimal"

// Payment represents money one member spent for the group.
// Payments are immutable once recorded; they can only be deleted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// Amount is the non-negative amount paid.
	Amount decimal.Decimal

	// Note is an optional free-text description (e.g., "Groceries").
	Note string

	// PaidAt is the Unix timestamp of the purchase. It decides the monthly bucket.
	PaidAt int64

	// PayerName is the display name of the member who paid.
	PayerName string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
