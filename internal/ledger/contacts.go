package ledger

import (
	"sort"

	"github.com/centsplit/centsplit/internal/models"
)

// Counterparties collects the IDs of every other user the viewer shares
// a personal expense with: the payer when it is not the viewer, and
// every split participant other than the viewer. The result is a
// deduplicated set, sorted by ID.
func Counterparties(viewerID string, expenses []*models.Expense) []string {
	seen := make(map[string]bool)
	for _, e := range expenses {
		if !e.Personal() || !e.Involves(viewerID) {
			continue
		}
		if e.PaidBy != viewerID {
			seen[e.PaidBy] = true
		}
		for _, s := range e.Splits {
			if s.UserID != viewerID {
				seen[s.UserID] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortContacts orders both contact lists ascending by name,
// case-sensitive, with ties broken by ID so the output is stable.
func SortContacts(c *models.Contacts) {
	sort.Slice(c.Users, func(i, j int) bool {
		if c.Users[i].Name != c.Users[j].Name {
			return c.Users[i].Name < c.Users[j].Name
		}
		return c.Users[i].ID < c.Users[j].ID
	})
	sort.Slice(c.Groups, func(i, j int) bool {
		if c.Groups[i].Name != c.Groups[j].Name {
			return c.Groups[i].Name < c.Groups[j].Name
		}
		return c.Groups[i].ID < c.Groups[j].ID
	})
}
