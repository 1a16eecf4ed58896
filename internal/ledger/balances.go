package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

// ComputeGroupBalance returns viewerID's net balance in a group over all
// unsettled splits. Positive means the viewer is owed money.
//
// The viewer must be a member of the group.
func (e *Engine) ComputeGroupBalance(groupID, viewerID string) (decimal.Decimal, error) {
	group, err := e.GetGroup(groupID)
	if err != nil {
		return decimal.Zero, e.queryFailed("group", err, "group_id", groupID, "user_id", viewerID)
	}
	if !group.HasMember(viewerID) {
		err := &PreconditionError{Reason: "viewer " + viewerID + " is not a member of group " + groupID}
		return decimal.Zero, e.queryFailed("group", err, "group_id", groupID, "user_id", viewerID)
	}
	e.metrics.BalanceQueries.WithLabelValues("group").Inc()
	return e.groupBalance(groupID, viewerID), nil
}

func (e *Engine) groupBalance(groupID, viewerID string) decimal.Decimal {
	balance := decimal.Zero
	for _, exp := range e.store.ListExpenses(groupID) {
		balance = balance.Add(calculator.ViewerContribution(&exp, viewerID))
	}
	return balance
}

// ComputePairBalance returns what friendID owes viewerID within one group,
// counting only expenses one of them paid and the other has an unsettled
// split in. Both must be members of the group.
func (e *Engine) ComputePairBalance(groupID, friendID, viewerID string) (decimal.Decimal, error) {
	group, err := e.GetGroup(groupID)
	if err != nil {
		return decimal.Zero, e.queryFailed("pair", err, "group_id", groupID)
	}
	for _, id := range []string{viewerID, friendID} {
		if !group.HasMember(id) {
			err := &PreconditionError{Reason: "user " + id + " is not a member of group " + groupID}
			return decimal.Zero, e.queryFailed("pair", err, "group_id", groupID, "user_id", id)
		}
	}
	e.metrics.BalanceQueries.WithLabelValues("pair").Inc()
	return e.pairBalance(groupID, friendID, viewerID), nil
}

func (e *Engine) pairBalance(groupID, friendID, viewerID string) decimal.Decimal {
	balance := decimal.Zero
	for _, exp := range e.store.ListExpenses(groupID) {
		balance = balance.Add(calculator.PairContribution(&exp, friendID, viewerID))
	}
	return balance
}

// ComputeFriendBalance returns what friendID owes viewerID across every group
// they share. It is the sum of ComputePairBalance over those groups, so
// ComputeFriendBalance(f, v) == -ComputeFriendBalance(v, f).
//
// Amounts are summed as-is; callers mixing currencies should use Friends,
// which keeps currencies apart.
func (e *Engine) ComputeFriendBalance(friendID, viewerID string) (decimal.Decimal, error) {
	for _, id := range []string{viewerID, friendID} {
		if _, err := e.GetUser(id); err != nil {
			return decimal.Zero, e.queryFailed("friend", err, "user_id", id)
		}
	}
	if friendID == viewerID {
		err := &PreconditionError{Reason: "friend and viewer are the same user"}
		return decimal.Zero, e.queryFailed("friend", err, "user_id", viewerID)
	}

	e.metrics.BalanceQueries.WithLabelValues("friend").Inc()
	balance := decimal.Zero
	for _, g := range e.store.ListGroups() {
		if g.HasMember(viewerID) && g.HasMember(friendID) {
			balance = balance.Add(e.pairBalance(g.ID, friendID, viewerID))
		}
	}
	return balance, nil
}

// ListGroupsFor returns the groups viewerID belongs to, in creation order,
// each with the viewer's balance and the group's total spend.
func (e *Engine) ListGroupsFor(viewerID string) ([]models.GroupSummary, error) {
	if _, err := e.GetUser(viewerID); err != nil {
		return nil, err
	}

	var summaries []models.GroupSummary
	for _, g := range e.store.ListGroups() {
		if !g.HasMember(viewerID) {
			continue
		}
		summaries = append(summaries, models.GroupSummary{
			Group:      g,
			Balance:    e.groupBalance(g.ID, viewerID),
			TotalSpent: groupTotal(e.store.ListExpenses(g.ID)),
		})
	}
	return summaries, nil
}

// Friends returns every user who shares a group with viewerID, in the order
// they are first met walking the viewer's groups. A friend shared through
// groups of different currencies appears once per currency.
func (e *Engine) Friends(viewerID string) ([]models.Friend, error) {
	if _, err := e.GetUser(viewerID); err != nil {
		return nil, err
	}

	type key struct{ userID, currency string }
	index := make(map[key]int)
	var friends []models.Friend

	for _, g := range e.store.ListGroups() {
		if !g.HasMember(viewerID) {
			continue
		}
		for _, m := range g.Members {
			if m.ID == viewerID {
				continue
			}
			k := key{m.ID, g.Currency}
			i, ok := index[k]
			if !ok {
				i = len(friends)
				index[k] = i
				friends = append(friends, models.Friend{User: e.users[m.ID], Balance: decimal.Zero, Currency: g.Currency})
			}
			friends[i].Balance = friends[i].Balance.Add(e.pairBalance(g.ID, m.ID, viewerID))
		}
	}
	return friends, nil
}

// Summary returns, per currency, how much others owe viewerID and how much
// the viewer owes, summed over the viewer's group balances. Currencies are
// listed in the order the viewer's groups introduce them.
func (e *Engine) Summary(viewerID string) ([]models.BalanceSummary, error) {
	groups, err := e.ListGroupsFor(viewerID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []models.BalanceSummary
	for _, g := range groups {
		i, ok := index[g.Currency]
		if !ok {
			i = len(out)
			index[g.Currency] = i
			out = append(out, models.BalanceSummary{
				Currency: g.Currency,
				Owed:     decimal.Zero,
				Owes:     decimal.Zero,
				Net:      decimal.Zero,
			})
		}
		s := &out[i]
		if g.Balance.IsPositive() {
			s.Owed = s.Owed.Add(g.Balance)
		} else {
			s.Owes = s.Owes.Add(g.Balance.Neg())
		}
		s.Net = s.Owed.Sub(s.Owes)
	}
	return out, nil
}

// SettlementPlan returns a short list of transfers that would clear every
// unsettled split in the group. Ties are broken by member order.
func (e *Engine) SettlementPlan(groupID string) ([]models.DebtEdge, error) {
	group, err := e.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	net := calculator.NetBalances(e.store.ListExpenses(groupID))
	return calculator.SimplifyDebts(net, group.MemberIDs()), nil
}
