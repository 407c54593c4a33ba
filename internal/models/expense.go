package models

// Expense represents money one user paid on behalf of others.
// An expense with an empty GroupID is a personal (1-to-1) expense.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g. "Dinner", "Rent").
	Description string

	// Category is an optional free-form classification.
	Category string

	// AmountCents is the total amount paid, in minor currency units.
	AmountCents int64

	// PaidBy is the user ID of the single payer.
	PaidBy string

	// GroupID is the group this expense belongs to, or empty for a
	// personal expense.
	GroupID string

	// Splits divides the amount among participants. The owed shares
	// must sum to AmountCents exactly.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one participant's assigned share of an expense.
type Split struct {
	// UserID references the participant who owes this share.
	UserID string

	// OwedCents is the share amount in minor currency units.
	OwedCents int64
}

// Personal reports whether the expense is a 1-to-1 expense outside any group.
func (e *Expense) Personal() bool {
	return e.GroupID == ""
}

// SplitFor returns the owed share for the given user, or 0 if the user
// is not a participant.
func (e *Expense) SplitFor(userID string) int64 {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s.OwedCents
		}
	}
	return 0
}

// Involves reports whether the user is the payer or appears in any split.
func (e *Expense) Involves(userID string) bool {
	if e.PaidBy == userID {
		return true
	}
	for _, s := range e.Splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}
