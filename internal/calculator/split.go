package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Share is one member's input to a split: an exact amount or a percentage,
// depending on the split type.
type Share struct {
	UserID string
	Value  decimal.Decimal
}

// Split builds expense splits for the given split type.
//
// For SplitEqual only the share user IDs are read. For SplitExact the share
// values are the amounts. For SplitPercentage the share values are
// percentages of total and must sum to 100.
//
// The payer's own split is created settled: nobody owes the payer for
// their own share.
func Split(splitType models.SplitType, total decimal.Decimal, shares []Share, payerID string) ([]models.ExpenseSplit, error) {
	switch splitType {
	case models.SplitEqual, "":
		ids := make([]string, len(shares))
		for i, s := range shares {
			ids[i] = s.UserID
		}
		return EqualSplit(total, ids, payerID)
	case models.SplitExact:
		return ExactSplit(shares, payerID)
	case models.SplitPercentage:
		return PercentageSplit(total, shares, payerID)
	default:
		return nil, fmt.Errorf("unknown split type: %q", splitType)
	}
}

// EqualSplit divides total evenly among members.
//
// Algorithm:
//   - share = total / n, rounded down to 2 decimal places
//   - remainder = total - share × n, never negative
//   - the remainder goes to the payer, or to the first member if the payer
//     is not splitting
//
// The resulting amounts always sum to total exactly.
// Example: 1000 / 3 → payer 333.34, others 333.33.
func EqualSplit(total decimal.Decimal, memberIDs []string, payerID string) ([]models.ExpenseSplit, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total must be positive")
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	share := total.Div(n).RoundDown(MinorUnitPlaces)
	remainder := total.Sub(share.Mul(n))

	splits := make([]models.ExpenseSplit, len(memberIDs))
	for i, id := range memberIDs {
		splits[i] = models.ExpenseSplit{UserID: id, Amount: share, Settled: id == payerID}
	}
	splits[remainderIndex(memberIDs, payerID)].Amount = share.Add(remainder)

	return splits, nil
}

// ExactSplit uses the given amounts as-is.
// Reconciliation against the expense total happens when the expense is added.
func ExactSplit(shares []Share, payerID string) ([]models.ExpenseSplit, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	splits := make([]models.ExpenseSplit, len(shares))
	for i, s := range shares {
		if s.Value.IsNegative() {
			return nil, fmt.Errorf("amount for %s cannot be negative", s.UserID)
		}
		splits[i] = models.ExpenseSplit{UserID: s.UserID, Amount: s.Value, Settled: s.UserID == payerID}
	}
	return splits, nil
}

// PercentageSplit divides total by percentage. Percentages must sum to 100.
// Each amount is rounded down to 2 decimal places and the remainder goes to
// the payer, as in EqualSplit.
func PercentageSplit(total decimal.Decimal, shares []Share, payerID string) ([]models.ExpenseSplit, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total must be positive")
	}

	sumPct := decimal.Zero
	for _, s := range shares {
		if s.Value.IsNegative() {
			return nil, fmt.Errorf("percentage for %s cannot be negative", s.UserID)
		}
		sumPct = sumPct.Add(s.Value)
	}
	if !sumPct.Equal(hundred) {
		return nil, fmt.Errorf("percentages must sum to 100, got %s", sumPct)
	}

	ids := make([]string, len(shares))
	splits := make([]models.ExpenseSplit, len(shares))
	allocated := decimal.Zero
	for i, s := range shares {
		amount := total.Mul(s.Value).Div(hundred).RoundDown(MinorUnitPlaces)
		allocated = allocated.Add(amount)
		ids[i] = s.UserID
		splits[i] = models.ExpenseSplit{UserID: s.UserID, Amount: amount, Settled: s.UserID == payerID}
	}
	idx := remainderIndex(ids, payerID)
	splits[idx].Amount = splits[idx].Amount.Add(total.Sub(allocated))

	return splits, nil
}

// remainderIndex picks the member who absorbs rounding: the payer if present,
// otherwise the first member.
func remainderIndex(memberIDs []string, payerID string) int {
	for i, id := range memberIDs {
		if id == payerID {
			return i
		}
	}
	return 0
}
