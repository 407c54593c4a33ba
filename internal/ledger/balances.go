package ledger

import (
	"sort"

	"github.com/centsplit/centsplit/internal/models"
)

// PairwiseNet computes the net balance between viewer and counterparty
// from personal expense and settlement history. Positive means the
// counterparty owes the viewer.
//
// Only records involving both parties contribute: if the viewer paid,
// the counterparty's owed share is added; if the counterparty paid, the
// viewer's owed share is subtracted. A settlement from the counterparty
// to the viewer pays down what they owe, and vice versa.
func PairwiseNet(viewerID, counterpartyID string, expenses []*models.Expense, settlements []*models.Settlement) int64 {
	// Nobody owes themselves. Without this the first expense case below
	// would match every self-paid expense and add the viewer's own share.
	if viewerID == counterpartyID {
		return 0
	}

	var net int64

	for _, e := range expenses {
		if !e.Personal() {
			continue
		}
		switch {
		case e.PaidBy == viewerID && e.Involves(counterpartyID):
			net += e.SplitFor(counterpartyID)
		case e.PaidBy == counterpartyID && e.Involves(viewerID):
			net -= e.SplitFor(viewerID)
		}
	}

	for _, s := range settlements {
		if s.GroupID != "" {
			continue
		}
		switch {
		case s.FromUserID == counterpartyID && s.ToUserID == viewerID:
			net -= s.AmountCents
		case s.FromUserID == viewerID && s.ToUserID == counterpartyID:
			net += s.AmountCents
		}
	}

	return net
}

// GroupBalances computes the net balance of every participant across a
// group's expenses and settlements. For each expense the payer is
// credited amount minus their own share and every other participant is
// debited their owed share, so the balances always sum to zero.
// Settlements shift balance from receiver to payer in the same pass.
func GroupBalances(expenses []*models.Expense, settlements []*models.Settlement) map[string]int64 {
	balances := make(map[string]int64)

	for _, e := range expenses {
		balances[e.PaidBy] += e.AmountCents - e.SplitFor(e.PaidBy)
		for _, s := range e.Splits {
			if s.UserID == e.PaidBy {
				continue
			}
			balances[s.UserID] -= s.OwedCents
		}
	}

	for _, s := range settlements {
		balances[s.FromUserID] += s.AmountCents
		balances[s.ToUserID] -= s.AmountCents
	}

	return balances
}

// Transfer is a suggested payment that reduces group debt.
type Transfer struct {
	FromUserID  string
	ToUserID    string
	AmountCents int64
}

// SimplifyDebts converts net balances into a short list of transfers
// that settle the group. Debtors and creditors are matched greedily,
// largest first, with ties broken by user ID for determinism.
func SimplifyDebts(balances map[string]int64) []Transfer {
	type entry struct {
		userID string
		amount int64
	}

	var debtors, creditors []entry
	for userID, bal := range balances {
		switch {
		case bal < 0:
			debtors = append(debtors, entry{userID, -bal})
		case bal > 0:
			creditors = append(creditors, entry{userID, bal})
		}
	}

	byAmountDesc := func(list []entry) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].amount != list[j].amount {
				return list[i].amount > list[j].amount
			}
			return list[i].userID < list[j].userID
		})
	}
	byAmountDesc(debtors)
	byAmountDesc(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		transfers = append(transfers, Transfer{
			FromUserID:  debtors[i].userID,
			ToUserID:    creditors[j].userID,
			AmountCents: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	return transfers
}
