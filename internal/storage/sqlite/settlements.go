package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centsplit/centsplit/internal/models"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	var groupID any
	if settlement.GroupID != "" {
		groupID = settlement.GroupID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount_cents, created_at, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, groupID, settlement.FromUserID, settlement.ToUserID,
		settlement.AmountCents, settlement.CreatedAt, settlement.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// listSettlements runs a filtered settlement query.
func listSettlements(ctx context.Context, q querier, where string, args ...any) ([]*models.Settlement, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount_cents, created_at, note
		 FROM settlements `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var groupID sql.NullString
		if err := rows.Scan(
			&settlement.ID, &groupID, &settlement.FromUserID, &settlement.ToUserID,
			&settlement.AmountCents, &settlement.CreatedAt, &settlement.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if groupID.Valid {
			settlement.GroupID = groupID.String
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
