package models

// Settlement represents a payment between users to clear debts.
// A settlement with an empty GroupID settles a personal (1-to-1) balance.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to, or empty for a
	// personal settlement.
	GroupID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// AmountCents is the payment amount in minor currency units.
	AmountCents int64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Note is an optional description for the settlement.
	Note string
}
