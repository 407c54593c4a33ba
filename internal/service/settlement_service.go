package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// SettlementService records payments that pay down outstanding
// balances. Settlements join the same aggregation pass as expenses, so
// a balance is always total owed minus total settled.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// SettlementInput is the shape of a new settlement. The principal is
// always the paying side.
type SettlementInput struct {
	ToUserID    string
	AmountCents int64
	// GroupID is empty for a personal settlement.
	GroupID string
	Note    string
}

// RecordSettlement validates and persists a settlement from the
// principal to another user. The amount may exceed the outstanding
// balance; overpayment simply flips the sign of the net.
func (s *SettlementService) RecordSettlement(ctx context.Context, principal *models.User, input SettlementInput) (*models.Settlement, error) {
	slog.Info("RecordSettlement request",
		"principal", principal.ID,
		"to", input.ToUserID,
		"amount_cents", input.AmountCents,
		"group_id", input.GroupID,
	)

	if input.AmountCents <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if input.ToUserID == principal.ID {
		return nil, ErrSelfSettlement
	}

	receiver, err := s.store.GetUserByID(ctx, input.ToUserID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, &UnknownUserError{ID: input.ToUserID}
	}

	if input.GroupID != "" {
		group, err := s.store.GetGroup(ctx, input.GroupID)
		if errors.Is(err, storage.ErrGroupNotFound) {
			return nil, &UnknownGroupError{ID: input.GroupID}
		}
		if err != nil {
			return nil, err
		}
		if !group.IsMember(principal.ID) || !group.IsMember(input.ToUserID) {
			return nil, ErrNotAGroupMember
		}
	}

	settlement := &models.Settlement{
		GroupID:     input.GroupID,
		FromUserID:  principal.ID,
		ToUserID:    input.ToUserID,
		AmountCents: input.AmountCents,
		Note:        input.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID)
	return settlement, nil
}
