package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/centsplit/centsplit/internal/auth"
	"github.com/centsplit/centsplit/internal/service"
	"github.com/centsplit/centsplit/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handlers := New(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewContactService(store),
		service.NewExpenseService(store),
		service.NewGroupService(store),
		service.NewBalanceService(store),
		service.NewSettlementService(store),
	)

	server := httptest.NewServer(handlers.Router(auth.NewResolver(store, jwtManager)))
	t.Cleanup(server.Close)
	return server
}

// doJSON issues a request and decodes the JSON response into target
// (which may be nil). The caller checks the returned status.
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body, target any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func register(t *testing.T, server *httptest.Server, email, name string) sessionResponse {
	t.Helper()

	var session sessionResponse
	status := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "",
		registerRequest{Email: email, Name: name, Password: "correct-horse"}, &session)
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, status)
	}
	if session.Token == "" {
		t.Fatalf("register %s: expected a session token", email)
	}
	return session
}

func TestAuthEndpoints(t *testing.T) {
	server := newTestServer(t)

	t.Run("register and login", func(t *testing.T) {
		register(t, server, "alice@example.com", "Alice")

		var session sessionResponse
		status := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "",
			loginRequest{Email: "alice@example.com", Password: "correct-horse"}, &session)
		if status != http.StatusOK {
			t.Errorf("expected 200, got %d", status)
		}
		if session.User.Name != "Alice" {
			t.Errorf("expected user Alice, got %q", session.User.Name)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "",
			registerRequest{Email: "alice@example.com", Name: "Imposter", Password: "correct-horse"}, nil)
		if status != http.StatusConflict {
			t.Errorf("expected 409, got %d", status)
		}
	})

	t.Run("empty name is a validation error", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "",
			registerRequest{Email: "nameless@example.com", Password: "correct-horse"}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/auth/register", "",
			registerRequest{Email: "short@example.com", Name: "Short", Password: "hunter2"}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", "",
			loginRequest{Email: "alice@example.com", Password: "wrong-horse"}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("protected route requires token", func(t *testing.T) {
		if status := doJSON(t, server, http.MethodGet, "/api/v1/contacts", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401 without token, got %d", status)
		}
		if status := doJSON(t, server, http.MethodGet, "/api/v1/contacts", "not-a-token", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401 with garbage token, got %d", status)
		}
	})
}

func TestExpenseAndBalanceEndpoints(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice@example.com", "Alice")
	bob := register(t, server, "bob@example.com", "Bob")
	dana := register(t, server, "dana@example.com", "Dana")

	t.Run("record personal expense", func(t *testing.T) {
		var expense expenseResponse
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Dinner",
				Amount:      "30.00",
				Splits: []splitRequest{
					{UserID: alice.User.ID, OwedShare: "15.00"},
					{UserID: bob.User.ID, OwedShare: "15.00"},
				},
			}, &expense)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
		if expense.Amount != "30.00" || expense.PaidBy != alice.User.ID {
			t.Errorf("unexpected expense: %+v", expense)
		}

		var fetched expenseResponse
		status = doJSON(t, server, http.MethodGet, "/api/v1/expenses/"+expense.ID, bob.Token, nil, &fetched)
		if status != http.StatusOK {
			t.Fatalf("participant fetch: expected 200, got %d", status)
		}
		if fetched.ID != expense.ID {
			t.Errorf("expected expense %s, got %s", expense.ID, fetched.ID)
		}
	})

	t.Run("split sum must match amount", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Broken",
				Amount:      "30.00",
				Splits:      []splitRequest{{UserID: bob.User.ID, OwedShare: "10.00"}},
			}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("equal split over participants", func(t *testing.T) {
		// Split with Dana so the Alice/Bob history asserted on below
		// stays untouched.
		var expense expenseResponse
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description:  "Taxi",
				Amount:       "9.00",
				Participants: []string{alice.User.ID, dana.User.ID},
			}, &expense)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}
		if len(expense.Splits) != 2 {
			t.Fatalf("expected 2 derived splits, got %d", len(expense.Splits))
		}
		for _, s := range expense.Splits {
			if s.OwedShare != "4.50" {
				t.Errorf("split[%s] = %s, want 4.50", s.UserID, s.OwedShare)
			}
		}
	})

	t.Run("duplicate split user rejected", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Twice",
				Amount:      "10.00",
				Splits: []splitRequest{
					{UserID: bob.User.ID, OwedShare: "5.00"},
					{UserID: bob.User.ID, OwedShare: "5.00"},
				},
			}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("unknown group id unprocessable", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Nowhere",
				Amount:      "10.00",
				GroupID:     "no-such-group",
				Splits:      []splitRequest{{UserID: bob.User.ID, OwedShare: "10.00"}},
			}, nil)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", status)
		}
	})

	t.Run("unknown participant unprocessable", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Ghost",
				Amount:      "10.00",
				Splits:      []splitRequest{{UserID: "no-such-user", OwedShare: "10.00"}},
			}, nil)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", status)
		}
	})

	t.Run("net balance from both perspectives", func(t *testing.T) {
		var balance netBalanceResponse
		status := doJSON(t, server, http.MethodGet, "/api/v1/balances/"+bob.User.ID, alice.Token, nil, &balance)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if balance.Balance != "15.00" {
			t.Errorf("expected Bob to owe Alice 15.00, got %s", balance.Balance)
		}

		status = doJSON(t, server, http.MethodGet, "/api/v1/balances/"+alice.User.ID, bob.Token, nil, &balance)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if balance.Balance != "-15.00" {
			t.Errorf("expected Bob's view to be -15.00, got %s", balance.Balance)
		}
	})

	t.Run("settlement clears the debt", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/settlements", bob.Token,
			settlementRequest{ToUserID: alice.User.ID, Amount: "15.00"}, nil)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d", status)
		}

		var balance netBalanceResponse
		doJSON(t, server, http.MethodGet, "/api/v1/balances/"+bob.User.ID, alice.Token, nil, &balance)
		if balance.Balance != "0.00" {
			t.Errorf("expected settled balance 0.00, got %s", balance.Balance)
		}
	})

	t.Run("contacts derived from shared expenses", func(t *testing.T) {
		var contacts contactsResponse
		status := doJSON(t, server, http.MethodGet, "/api/v1/contacts", alice.Token, nil, &contacts)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(contacts.Users) != 2 ||
			contacts.Users[0].ID != bob.User.ID ||
			contacts.Users[1].ID != dana.User.ID {
			t.Errorf("expected Bob then Dana in contacts, got %+v", contacts.Users)
		}
	})
}

func TestGroupEndpoints(t *testing.T) {
	server := newTestServer(t)
	alice := register(t, server, "alice@example.com", "Alice")
	bob := register(t, server, "bob@example.com", "Bob")
	carol := register(t, server, "carol@example.com", "Carol")

	var group groupResponse
	status := doJSON(t, server, http.MethodPost, "/api/v1/groups", alice.Token,
		createGroupRequest{Name: "  Ski Trip  ", Members: []string{bob.User.ID}}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d", status)
	}

	t.Run("name trimmed and creator is admin", func(t *testing.T) {
		if group.Name != "Ski Trip" {
			t.Errorf("expected trimmed name, got %q", group.Name)
		}
		if len(group.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(group.Members))
		}
		for _, m := range group.Members {
			if m.UserID == alice.User.ID && m.Role != "admin" {
				t.Errorf("expected creator to be admin, got %q", m.Role)
			}
		}
	})

	t.Run("unknown member rejected atomically", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/groups", alice.Token,
			createGroupRequest{Name: "Doomed", Members: []string{bob.User.ID, "no-such-user"}}, nil)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", status)
		}
	})

	t.Run("non-member cannot view", func(t *testing.T) {
		status := doJSON(t, server, http.MethodGet, "/api/v1/groups/"+group.ID, carol.Token, nil, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("group balances with transfers", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/expenses", alice.Token,
			expenseRequest{
				Description: "Lift tickets",
				Amount:      "100.00",
				GroupID:     group.ID,
				Splits: []splitRequest{
					{UserID: alice.User.ID, OwedShare: "50.00"},
					{UserID: bob.User.ID, OwedShare: "50.00"},
				},
			}, nil)
		if status != http.StatusCreated {
			t.Fatalf("group expense: expected 201, got %d", status)
		}

		var sheet groupBalancesResponse
		status = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+group.ID+"/balances", bob.Token, nil, &sheet)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		byUser := map[string]string{}
		for _, b := range sheet.Balances {
			byUser[b.UserID] = b.Balance
		}
		if byUser[alice.User.ID] != "50.00" || byUser[bob.User.ID] != "-50.00" {
			t.Errorf("unexpected balances: %v", byUser)
		}
		if len(sheet.Transfers) != 1 ||
			sheet.Transfers[0].From != bob.User.ID ||
			sheet.Transfers[0].To != alice.User.ID ||
			sheet.Transfers[0].Amount != "50.00" {
			t.Errorf("unexpected transfers: %+v", sheet.Transfers)
		}
	})

	t.Run("delete rejected while expenses remain", func(t *testing.T) {
		status := doJSON(t, server, http.MethodDelete, "/api/v1/groups/"+group.ID, alice.Token, nil, nil)
		if status != http.StatusConflict {
			t.Errorf("expected 409, got %d", status)
		}
	})

	t.Run("membership edits are admin only", func(t *testing.T) {
		status := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+group.ID+"/members", bob.Token,
			addMembersRequest{Members: []string{carol.User.ID}}, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403 for non-admin, got %d", status)
		}

		var updated groupResponse
		status = doJSON(t, server, http.MethodPost, "/api/v1/groups/"+group.ID+"/members", alice.Token,
			addMembersRequest{Members: []string{carol.User.ID}}, &updated)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(updated.Members) != 3 {
			t.Errorf("expected 3 members, got %d", len(updated.Members))
		}
	})

	t.Run("creator cannot be removed", func(t *testing.T) {
		status := doJSON(t, server, http.MethodDelete,
			fmt.Sprintf("/api/v1/groups/%s/members/%s", group.ID, alice.User.ID), alice.Token, nil, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})
}
