package service

import (
	"context"
	"log/slog"

	"github.com/centsplit/centsplit/internal/ledger"
	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// ContactService derives the viewer's contacts (users and groups) from
// expense history and group rosters. Purely read-only.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a new ContactService with the given storage backend.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// ListContacts computes the viewer's contacts: every other user they
// share a personal expense with, and every group they belong to.
// Counterparty IDs that no longer resolve to a user are dropped rather
// than failing the call. Both lists come back sorted by name, ties
// broken by ID.
func (s *ContactService) ListContacts(ctx context.Context, principal *models.User) (*models.Contacts, error) {
	expenses, groups, err := s.store.ContactSources(ctx, principal.ID)
	if err != nil {
		slog.Error("ListContacts failed", "principal", principal.ID, "error", err)
		return nil, err
	}

	counterpartyIDs := ledger.Counterparties(principal.ID, expenses)
	users, err := s.store.GetUsersByIDs(ctx, counterpartyIDs)
	if err != nil {
		return nil, err
	}

	contacts := &models.Contacts{}
	for _, id := range counterpartyIDs {
		user := users[id]
		if user == nil {
			// Tombstoned user; contact discovery is best-effort.
			continue
		}
		contacts.Users = append(contacts.Users, models.ContactUser{
			ID:       user.ID,
			Name:     user.DisplayName,
			Email:    user.Email,
			ImageURL: user.ImageURL,
		})
	}
	for _, group := range groups {
		contacts.Groups = append(contacts.Groups, models.ContactGroup{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
			MemberCount: len(group.Members),
		})
	}

	ledger.SortContacts(contacts)

	slog.Debug("Contacts derived",
		"principal", principal.ID,
		"users_count", len(contacts.Users),
		"groups_count", len(contacts.Groups),
	)
	return contacts, nil
}
