// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/centsplit/centsplit/internal/models"
)

// Not-found sentinels returned by Store implementations.
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrGroupNotFound   = errors.New("group not found")
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Every mutation is a single atomic write: validation happens in the
// service layer before the call, and no partial state is ever visible.
// The multi-collection read methods (PersonalHistory, GroupHistory,
// ContactSources) observe one consistent snapshot for the whole read.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil)
	// when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when the
	// user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. IDs with no
	// matching user are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateExpense persists an expense and its splits in one
	// transaction. ID and CreatedAt are populated when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListGroupExpenses retrieves every expense recorded against the
	// group, oldest first.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateGroup persists a group and its member roster in one
	// transaction. ID and CreatedAt are populated when unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its roster.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// DeleteGroup removes a group and its roster.
	DeleteGroup(ctx context.Context, groupID string) error

	// CountGroupExpenses returns the number of expenses referencing
	// the group.
	CountGroupExpenses(ctx context.Context, groupID string) (int, error)

	// AddGroupMembers appends roster entries. Existing members are
	// left untouched.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// RemoveGroupMember deletes one roster entry.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// CreateSettlement persists a settlement. ID and CreatedAt are
	// populated when unset.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// PersonalHistory retrieves, in one snapshot, every personal
	// expense the user pays or participates in, plus every personal
	// settlement the user sent or received.
	PersonalHistory(ctx context.Context, userID string) ([]*models.Expense, []*models.Settlement, error)

	// GroupHistory retrieves, in one snapshot, every expense and
	// settlement recorded against the group.
	GroupHistory(ctx context.Context, groupID string) ([]*models.Expense, []*models.Settlement, error)

	// ContactSources retrieves, in one snapshot, the user's personal
	// expense history and every group the user belongs to.
	ContactSources(ctx context.Context, userID string) ([]*models.Expense, []*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
