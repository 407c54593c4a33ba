package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Personal expenses store NULL so "group_id IS NULL" is an
	// indexable predicate.
	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, category, amount_cents, paid_by, group_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Category, expense.AmountCents,
		expense.PaidBy, groupID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, owed_cents) VALUES (?, ?, ?)",
			expense.ID, split.UserID, split.OwedCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including all splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expenses, err := listExpenses(ctx, s.db, "WHERE e.id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrExpenseNotFound, expenseID)
	}
	return expenses[0], nil
}

// ListGroupExpenses retrieves every expense for a group, oldest first.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, "WHERE e.group_id = ? ORDER BY e.created_at, e.id", groupID)
}

// listExpenses runs a filtered expense query and loads the splits for
// every matched expense in a second query.
func listExpenses(ctx context.Context, q querier, where string, args ...any) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT e.id, e.description, e.category, e.amount_cents, e.paid_by, e.group_id, e.created_at
		 FROM expenses e `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var groupID sql.NullString
		if err := rows.Scan(
			&expense.ID, &expense.Description, &expense.Category, &expense.AmountCents,
			&expense.PaidBy, &groupID, &expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if groupID.Valid {
			expense.GroupID = groupID.String
		}
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return nil, nil
	}

	ids := make([]any, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	splitRows, err := q.QueryContext(ctx,
		`SELECT expense_id, user_id, owed_cents FROM expense_splits
		 WHERE expense_id IN (`+placeholders(len(ids))+`) ORDER BY rowid`, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID string
		var split models.Split
		if err := splitRows.Scan(&expenseID, &split.UserID, &split.OwedCents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if expense, ok := byID[expenseID]; ok {
			expense.Splits = append(expense.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}

// CountGroupExpenses returns the number of expenses referencing a group.
func (s *SQLiteStore) CountGroupExpenses(ctx context.Context, groupID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE group_id = ?", groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count group expenses: %w", err)
	}
	return count, nil
}

// listPersonalExpensesInvolving implements the personal-history scan:
// one query over "paid by the user OR the user appears in a split",
// restricted to expenses with no group.
func listPersonalExpensesInvolving(ctx context.Context, q querier, userID string) ([]*models.Expense, error) {
	return listExpenses(ctx, q,
		`WHERE e.group_id IS NULL
		   AND (e.paid_by = ? OR EXISTS (
			SELECT 1 FROM expense_splits sp WHERE sp.expense_id = e.id AND sp.user_id = ?))
		 ORDER BY e.created_at, e.id`,
		userID, userID)
}
