package ledger

import (
	"testing"

	"github.com/centsplit/centsplit/internal/models"
)

func personalExpense(payer string, amount int64, splits ...models.Split) *models.Expense {
	return &models.Expense{PaidBy: payer, AmountCents: amount, Splits: splits}
}

func TestPairwiseNet(t *testing.T) {
	// V pays 100.00 split V:40 C:60; C owes V 60.
	expenseA := personalExpense("v", 10000,
		models.Split{UserID: "v", OwedCents: 4000},
		models.Split{UserID: "c", OwedCents: 6000},
	)
	// C pays 50.00 split V:20 C:30; V owes C 20.
	expenseB := personalExpense("c", 5000,
		models.Split{UserID: "v", OwedCents: 2000},
		models.Split{UserID: "c", OwedCents: 3000},
	)

	t.Run("single expense", func(t *testing.T) {
		got := PairwiseNet("v", "c", []*models.Expense{expenseA}, nil)
		if got != 6000 {
			t.Errorf("net = %d, want 6000", got)
		}
	})

	t.Run("offsetting expenses", func(t *testing.T) {
		got := PairwiseNet("v", "c", []*models.Expense{expenseA, expenseB}, nil)
		if got != 4000 {
			t.Errorf("net = %d, want 4000", got)
		}
	})

	t.Run("antisymmetric", func(t *testing.T) {
		expenses := []*models.Expense{expenseA, expenseB}
		if PairwiseNet("v", "c", expenses, nil) != -PairwiseNet("c", "v", expenses, nil) {
			t.Error("expected net(v,c) == -net(c,v)")
		}
	})

	t.Run("settlement pays down debt", func(t *testing.T) {
		settlements := []*models.Settlement{
			{FromUserID: "c", ToUserID: "v", AmountCents: 4000},
		}
		got := PairwiseNet("v", "c", []*models.Expense{expenseA, expenseB}, settlements)
		if got != 0 {
			t.Errorf("net after settlement = %d, want 0", got)
		}
	})

	t.Run("overpayment flips the sign", func(t *testing.T) {
		settlements := []*models.Settlement{
			{FromUserID: "c", ToUserID: "v", AmountCents: 7000},
		}
		got := PairwiseNet("v", "c", []*models.Expense{expenseA, expenseB}, settlements)
		if got != -3000 {
			t.Errorf("net = %d, want -3000", got)
		}
	})

	t.Run("group records excluded", func(t *testing.T) {
		groupExpense := &models.Expense{
			PaidBy: "v", AmountCents: 9000, GroupID: "g",
			Splits: []models.Split{{UserID: "c", OwedCents: 9000}},
		}
		groupSettlement := &models.Settlement{
			GroupID: "g", FromUserID: "c", ToUserID: "v", AmountCents: 1000,
		}
		got := PairwiseNet("v", "c", []*models.Expense{groupExpense}, []*models.Settlement{groupSettlement})
		if got != 0 {
			t.Errorf("net = %d, want 0 (group records must not count)", got)
		}
	})

	t.Run("net against own id is zero", func(t *testing.T) {
		got := PairwiseNet("v", "v", []*models.Expense{expenseA, expenseB}, nil)
		if got != 0 {
			t.Errorf("net(v,v) = %d, want 0", got)
		}
	})

	t.Run("expenses involving a third party excluded", func(t *testing.T) {
		other := personalExpense("v", 1000, models.Split{UserID: "x", OwedCents: 1000})
		got := PairwiseNet("v", "c", []*models.Expense{other}, nil)
		if got != 0 {
			t.Errorf("net = %d, want 0", got)
		}
	})
}

func TestGroupBalances(t *testing.T) {
	t.Run("even three-way split", func(t *testing.T) {
		// A pays 90.00 split evenly among A, B, C.
		expenses := []*models.Expense{{
			PaidBy: "a", AmountCents: 9000, GroupID: "g",
			Splits: []models.Split{
				{UserID: "a", OwedCents: 3000},
				{UserID: "b", OwedCents: 3000},
				{UserID: "c", OwedCents: 3000},
			},
		}}

		balances := GroupBalances(expenses, nil)
		want := map[string]int64{"a": 6000, "b": -3000, "c": -3000}
		for userID, w := range want {
			if balances[userID] != w {
				t.Errorf("balance[%s] = %d, want %d", userID, balances[userID], w)
			}
		}
	})

	t.Run("balances sum to zero", func(t *testing.T) {
		expenses := []*models.Expense{
			{
				PaidBy: "a", AmountCents: 10001, GroupID: "g",
				Splits: []models.Split{
					{UserID: "a", OwedCents: 3334},
					{UserID: "b", OwedCents: 3334},
					{UserID: "c", OwedCents: 3333},
				},
			},
			{
				PaidBy: "b", AmountCents: 500, GroupID: "g",
				Splits: []models.Split{
					{UserID: "a", OwedCents: 250},
					{UserID: "c", OwedCents: 250},
				},
			},
		}
		settlements := []*models.Settlement{
			{GroupID: "g", FromUserID: "c", ToUserID: "a", AmountCents: 1000},
		}

		balances := GroupBalances(expenses, settlements)
		var sum int64
		for _, bal := range balances {
			sum += bal
		}
		if sum != 0 {
			t.Errorf("balances sum to %d, want 0", sum)
		}
	})

	t.Run("payer not in splits", func(t *testing.T) {
		// A pays 20.00 entirely for B and C.
		expenses := []*models.Expense{{
			PaidBy: "a", AmountCents: 2000, GroupID: "g",
			Splits: []models.Split{
				{UserID: "b", OwedCents: 1000},
				{UserID: "c", OwedCents: 1000},
			},
		}}

		balances := GroupBalances(expenses, nil)
		if balances["a"] != 2000 {
			t.Errorf("balance[a] = %d, want 2000", balances["a"])
		}
	})
}

func TestSimplifyDebts(t *testing.T) {
	t.Run("three members one creditor", func(t *testing.T) {
		balances := map[string]int64{"a": 6000, "b": -3000, "c": -3000}

		transfers := SimplifyDebts(balances)
		if len(transfers) != 2 {
			t.Fatalf("expected 2 transfers, got %d", len(transfers))
		}
		for _, tr := range transfers {
			if tr.ToUserID != "a" || tr.AmountCents != 3000 {
				t.Errorf("unexpected transfer %+v", tr)
			}
		}
	})

	t.Run("transfers settle all balances", func(t *testing.T) {
		balances := map[string]int64{"a": 1234, "b": -1000, "c": -734, "d": 500}

		remaining := make(map[string]int64, len(balances))
		for userID, bal := range balances {
			remaining[userID] = bal
		}
		for _, tr := range SimplifyDebts(balances) {
			remaining[tr.FromUserID] += tr.AmountCents
			remaining[tr.ToUserID] -= tr.AmountCents
		}
		for userID, bal := range remaining {
			if bal != 0 {
				t.Errorf("user %s left with balance %d", userID, bal)
			}
		}
	})

	t.Run("settled group yields no transfers", func(t *testing.T) {
		if got := SimplifyDebts(map[string]int64{"a": 0, "b": 0}); len(got) != 0 {
			t.Errorf("expected no transfers, got %v", got)
		}
	})
}
