package service

import (
	"context"
	"log/slog"

	"github.com/centsplit/centsplit/internal/ledger"
	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// BalanceService computes net balances from raw expense and settlement
// history. No balance is ever cached: every call re-derives from the
// records, which remain the source of truth.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// NetBalance computes the signed balance between the viewer and one
// counterparty over their shared personal history. Positive means the
// counterparty owes the viewer. A counterparty with no shared history
// yields zero, never an error.
func (s *BalanceService) NetBalance(ctx context.Context, principal *models.User, counterpartyID string) (int64, error) {
	expenses, settlements, err := s.store.PersonalHistory(ctx, principal.ID)
	if err != nil {
		slog.Error("NetBalance failed", "principal", principal.ID, "error", err)
		return 0, err
	}
	return ledger.PairwiseNet(principal.ID, counterpartyID, expenses, settlements), nil
}

// GroupBalanceSheet is the derived balance state of one group.
type GroupBalanceSheet struct {
	// Balances maps every member (and any former member still carrying
	// history) to their net balance. The values sum to zero.
	Balances map[string]int64

	// Transfers is a minimal set of payments that would settle the
	// group.
	Transfers []ledger.Transfer
}

// GroupBalances computes per-member net balances for a group. Only
// members may view them. Members with no recorded activity appear with
// a zero balance.
func (s *BalanceService) GroupBalances(ctx context.Context, principal *models.User, groupID string) (*GroupBalanceSheet, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(principal.ID) {
		return nil, ErrNotAGroupMember
	}

	expenses, settlements, err := s.store.GroupHistory(ctx, groupID)
	if err != nil {
		slog.Error("GroupBalances failed", "group_id", groupID, "error", err)
		return nil, err
	}

	balances := ledger.GroupBalances(expenses, settlements)
	for _, member := range group.Members {
		if _, ok := balances[member.UserID]; !ok {
			balances[member.UserID] = 0
		}
	}

	slog.Debug("Group balances derived",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"members_count", len(balances),
	)
	return &GroupBalanceSheet{
		Balances:  balances,
		Transfers: ledger.SimplifyDebts(balances),
	}, nil
}
