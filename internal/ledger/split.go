package ledger

import (
	"errors"

	"github.com/centsplit/centsplit/internal/models"
)

var (
	// ErrNoParticipants indicates an equal split over zero users.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrNonPositiveAmount indicates a zero or negative split amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// EqualSplit divides amountCents into one share per participant. Shares
// differ by at most one cent; the remainder is assigned to the earliest
// participants so the result is deterministic and sums exactly to
// amountCents.
func EqualSplit(amountCents int64, participants []string) ([]models.Split, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if amountCents <= 0 {
		return nil, ErrNonPositiveAmount
	}

	n := int64(len(participants))
	base := amountCents / n
	remainder := amountCents % n

	splits := make([]models.Split, len(participants))
	for i, userID := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		splits[i] = models.Split{UserID: userID, OwedCents: share}
	}
	return splits, nil
}

// SumSplits returns the total owed across all splits.
func SumSplits(splits []models.Split) int64 {
	var sum int64
	for _, s := range splits {
		sum += s.OwedCents
	}
	return sum
}
