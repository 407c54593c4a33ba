package sqlite

import (
	"context"
	"database/sql"

	"github.com/centsplit/centsplit/internal/models"
)

// PersonalHistory retrieves the user's personal expenses and personal
// settlements in one read transaction, so the balance derivation sees a
// single snapshot.
func (s *SQLiteStore) PersonalHistory(ctx context.Context, userID string) ([]*models.Expense, []*models.Settlement, error) {
	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
	)
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		expenses, err = listPersonalExpensesInvolving(ctx, tx, userID)
		if err != nil {
			return err
		}
		settlements, err = listSettlements(ctx, tx,
			"WHERE group_id IS NULL AND (from_user_id = ? OR to_user_id = ?) ORDER BY created_at, id",
			userID, userID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return expenses, settlements, nil
}

// GroupHistory retrieves a group's expenses and settlements in one read
// transaction.
func (s *SQLiteStore) GroupHistory(ctx context.Context, groupID string) ([]*models.Expense, []*models.Settlement, error) {
	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
	)
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		expenses, err = listExpenses(ctx, tx, "WHERE e.group_id = ? ORDER BY e.created_at, e.id", groupID)
		if err != nil {
			return err
		}
		settlements, err = listSettlements(ctx, tx,
			"WHERE group_id = ? ORDER BY created_at, id", groupID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return expenses, settlements, nil
}

// ContactSources retrieves the user's personal expense history and
// group memberships in one read transaction.
func (s *SQLiteStore) ContactSources(ctx context.Context, userID string) ([]*models.Expense, []*models.Group, error) {
	var (
		expenses []*models.Expense
		groups   []*models.Group
	)
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		expenses, err = listPersonalExpensesInvolving(ctx, tx, userID)
		if err != nil {
			return err
		}
		groups, err = listGroupsByMember(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return expenses, groups, nil
}
