package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage/sqlite"
)

// setupStore creates a temp SQLite store seeded with three users.
func setupStore(t *testing.T) (store *sqlite.SQLiteStore, alice, bob, carol *models.User) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "centsplit-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err = sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	alice = seedUser(t, store, "alice@example.com", "Alice")
	bob = seedUser(t, store, "bob@example.com", "Bob")
	carol = seedUser(t, store, "carol@example.com", "Carol")
	return store, alice, bob, carol
}

func seedUser(t *testing.T, store *sqlite.SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}
