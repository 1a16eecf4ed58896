package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// ViewerContribution is what one expense adds to viewerID's net balance.
//
//   - viewer paid: + sum of other members' unsettled split amounts
//   - viewer did not pay: - viewer's own unsettled split amount
//
// Settled splits contribute zero regardless of payer.
func ViewerContribution(e *models.Expense, viewerID string) decimal.Decimal {
	if e.PaidBy == viewerID {
		owed := decimal.Zero
		for _, s := range e.Splits {
			if s.UserID != viewerID && !s.Settled {
				owed = owed.Add(s.Amount)
			}
		}
		return owed
	}
	if s, ok := e.Split(viewerID); ok && !s.Settled {
		return s.Amount.Neg()
	}
	return decimal.Zero
}

// PairContribution is what one expense adds to the balance between viewerID
// and friendID, from the viewer's side.
//
//   - viewer paid and friend's split is unsettled: + friend's amount
//   - friend paid and viewer's split is unsettled: - viewer's amount
func PairContribution(e *models.Expense, friendID, viewerID string) decimal.Decimal {
	switch e.PaidBy {
	case viewerID:
		if s, ok := e.Split(friendID); ok && !s.Settled && friendID != viewerID {
			return s.Amount
		}
	case friendID:
		if s, ok := e.Split(viewerID); ok && !s.Settled {
			return s.Amount.Neg()
		}
	}
	return decimal.Zero
}

// NetBalances computes every user's net balance over the given expenses.
// Each unsettled non-payer split moves its amount from the debtor to the payer,
// so the values always sum to zero.
func NetBalances(expenses []models.Expense) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		for _, s := range e.Splits {
			if s.Settled || s.UserID == e.PaidBy {
				continue
			}
			net[e.PaidBy] = net[e.PaidBy].Add(s.Amount)
			net[s.UserID] = net[s.UserID].Sub(s.Amount)
		}
	}
	return net
}

type party struct {
	id     string
	rank   int
	amount decimal.Decimal // always positive
}

// SimplifyDebts turns net balances into a short list of transfers.
//
// Algorithm:
//   - split members into creditors (net > 0) and debtors (net < 0)
//   - order both by amount descending, ties by position in order
//   - greedily match the current debtor with the current creditor for the
//     smaller of the two amounts, advancing whichever reaches zero
//
// order fixes the tie-break so the plan is deterministic. Members missing
// from order sort after it by ID.
func SimplifyDebts(net map[string]decimal.Decimal, order []string) []models.DebtEdge {
	rank := make(map[string]int, len(order))
	for i, id := range order {
		rank[id] = i
	}

	var creditors, debtors []party
	for id, bal := range net {
		r, ok := rank[id]
		if !ok {
			r = len(order)
		}
		switch {
		case bal.IsPositive():
			creditors = append(creditors, party{id: id, rank: r, amount: bal})
		case bal.IsNegative():
			debtors = append(debtors, party{id: id, rank: r, amount: bal.Neg()})
		}
	}
	sortParties(creditors)
	sortParties(debtors)

	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			edges = append(edges, models.DebtEdge{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}

	return edges
}

func sortParties(ps []party) {
	sort.Slice(ps, func(a, b int) bool {
		if c := ps[a].amount.Cmp(ps[b].amount); c != 0 {
			return c > 0
		}
		if ps[a].rank != ps[b].rank {
			return ps[a].rank < ps[b].rank
		}
		return ps[a].id < ps[b].id
	})
}
