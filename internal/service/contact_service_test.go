package service

import (
	"context"
	"testing"

	"github.com/centsplit/centsplit/internal/models"
)

func TestListContacts(t *testing.T) {
	store, alice, bob, carol := setupStore(t)
	contactSvc := NewContactService(store)
	expenseSvc := NewExpenseService(store)
	groupSvc := NewGroupService(store)
	ctx := context.Background()

	t.Run("no history yields empty lists", func(t *testing.T) {
		contacts, err := contactSvc.ListContacts(ctx, alice)
		if err != nil {
			t.Fatalf("ListContacts failed: %v", err)
		}
		if len(contacts.Users) != 0 || len(contacts.Groups) != 0 {
			t.Errorf("expected empty contacts, got %+v", contacts)
		}
	})

	// Alice pays for Carol; Bob pays for Alice. Both become contacts.
	_, err := expenseSvc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Coffee",
		AmountCents: 700,
		Splits:      []models.Split{{UserID: carol.ID, OwedCents: 700}},
	})
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	_, err = expenseSvc.RecordExpense(ctx, bob, ExpenseInput{
		Description: "Lunch",
		AmountCents: 1500,
		Splits: []models.Split{
			{UserID: alice.ID, OwedCents: 800},
			{UserID: bob.ID, OwedCents: 700},
		},
	})
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	group, err := groupSvc.CreateGroup(ctx, alice, "Book club", "monthly reads", []string{bob.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("derives users and groups sorted by name", func(t *testing.T) {
		contacts, err := contactSvc.ListContacts(ctx, alice)
		if err != nil {
			t.Fatalf("ListContacts failed: %v", err)
		}

		if len(contacts.Users) != 2 {
			t.Fatalf("expected 2 contact users, got %d", len(contacts.Users))
		}
		if contacts.Users[0].Name != "Bob" || contacts.Users[1].Name != "Carol" {
			t.Errorf("users not sorted by name: %+v", contacts.Users)
		}
		for _, u := range contacts.Users {
			if u.ID == alice.ID {
				t.Error("viewer must not appear in its own contact list")
			}
			if u.Email == "" {
				t.Error("expected contact email populated")
			}
		}

		if len(contacts.Groups) != 1 {
			t.Fatalf("expected 1 contact group, got %d", len(contacts.Groups))
		}
		got := contacts.Groups[0]
		if got.ID != group.ID || got.Name != "Book club" || got.MemberCount != 2 {
			t.Errorf("unexpected group summary: %+v", got)
		}
	})

	t.Run("group-only counterparty is not a user contact", func(t *testing.T) {
		// Bob shares a group with Alice but Carol does not; Carol's
		// only link is a personal expense. A user reached only through
		// a group expense must not appear in the users list.
		dave := seedUser(t, store, "dave@example.com", "Dave")
		if _, err := groupSvc.AddMembers(ctx, alice, group.ID, []string{dave.ID}); err != nil {
			t.Fatalf("AddMembers failed: %v", err)
		}
		_, err := expenseSvc.RecordExpense(ctx, alice, ExpenseInput{
			Description: "Books",
			AmountCents: 3000,
			GroupID:     group.ID,
			Splits:      []models.Split{{UserID: dave.ID, OwedCents: 3000}},
		})
		if err != nil {
			t.Fatalf("RecordExpense failed: %v", err)
		}

		contacts, err := contactSvc.ListContacts(ctx, alice)
		if err != nil {
			t.Fatalf("ListContacts failed: %v", err)
		}
		for _, u := range contacts.Users {
			if u.ID == dave.ID {
				t.Error("group expense must not create a personal contact")
			}
		}
		if contacts.Groups[0].MemberCount != 3 {
			t.Errorf("expected member count 3, got %d", contacts.Groups[0].MemberCount)
		}
	})
}
