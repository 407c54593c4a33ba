package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/centsplit/centsplit/internal/ledger"
	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// ExpenseService records and retrieves expenses. Every method takes the
// resolved principal explicitly; no session state is consulted here.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput is the validated-by-RecordExpense shape of a new expense.
type ExpenseInput struct {
	Description string
	Category    string
	AmountCents int64
	// PaidBy defaults to the principal when empty.
	PaidBy string
	// GroupID is empty for a personal expense.
	GroupID string
	Splits  []models.Split
	// Participants requests an equal split over the listed users when
	// Splits is empty. Ignored when explicit splits are given.
	Participants []string
}

// RecordExpense validates and persists a new expense.
//
// Validation order: positive amount, non-empty splits (deriving an
// equal split from Participants when none are given), no duplicate
// split users, split sum equal to the amount (exact, in cents), every
// referenced user exists, and, for a group expense, every participant
// is a member of the group. Validation completes fully before the
// single insert.
func (s *ExpenseService) RecordExpense(ctx context.Context, principal *models.User, input ExpenseInput) (*models.Expense, error) {
	slog.Info("RecordExpense request",
		"principal", principal.ID,
		"amount_cents", input.AmountCents,
		"splits_count", len(input.Splits),
		"group_id", input.GroupID,
	)

	if input.AmountCents <= 0 {
		return nil, ErrNonPositiveAmount
	}
	splits := input.Splits
	if len(splits) == 0 {
		if len(input.Participants) == 0 {
			return nil, ErrEmptySplits
		}
		var err error
		splits, err = ledger.EqualSplit(input.AmountCents, input.Participants)
		if err != nil {
			return nil, err
		}
	}
	seen := make(map[string]bool, len(splits))
	for _, split := range splits {
		if seen[split.UserID] {
			return nil, &DuplicateSplitUserError{ID: split.UserID}
		}
		seen[split.UserID] = true
	}
	if ledger.SumSplits(splits) != input.AmountCents {
		return nil, ErrInvalidSplitSum
	}

	payerID := input.PaidBy
	if payerID == "" {
		payerID = principal.ID
	}

	// Everyone referenced must resolve to an existing user: the payer
	// and every split participant.
	participantIDs := make([]string, 0, len(splits)+1)
	participantIDs = append(participantIDs, payerID)
	for _, split := range splits {
		participantIDs = append(participantIDs, split.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, participantIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range participantIDs {
		if users[id] == nil {
			return nil, &UnknownParticipantError{ID: id}
		}
	}

	if input.GroupID != "" {
		group, err := s.store.GetGroup(ctx, input.GroupID)
		if errors.Is(err, storage.ErrGroupNotFound) {
			// The id came from the request body, so it is a dangling
			// reference, not a missing resource.
			return nil, &UnknownGroupError{ID: input.GroupID}
		}
		if err != nil {
			return nil, err
		}
		for _, id := range participantIDs {
			if !group.IsMember(id) {
				return nil, ErrNotAGroupMember
			}
		}
	}

	expense := &models.Expense{
		Description: input.Description,
		Category:    input.Category,
		AmountCents: input.AmountCents,
		PaidBy:      payerID,
		GroupID:     input.GroupID,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("RecordExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense recorded", "expense_id", expense.ID, "paid_by", payerID)
	return expense, nil
}

// GetExpense retrieves an expense. Only participants (payer or split
// holders) may view it.
func (s *ExpenseService) GetExpense(ctx context.Context, principal *models.User, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.Involves(principal.ID) {
		return nil, ErrNotParticipant
	}
	return expense, nil
}

// ListGroupExpenses retrieves a group's expenses. Only members may view
// them.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, principal *models.User, groupID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(principal.ID) {
		return nil, ErrNotAGroupMember
	}
	return s.store.ListGroupExpenses(ctx, groupID)
}
