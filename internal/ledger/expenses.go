package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// AddExpense validates a complete expense record and stores it.
//
// Acceptance is all-or-nothing. The expense is rejected with a
// ValidationError when:
//   - description, payer, category or splits are missing or malformed
//   - amount is not positive or has more than 2 decimal places
//   - currency differs from the group's (empty means the group's)
//   - the payer or any split user is not a group member
//   - a user has more than one split, or a split amount is negative
//   - the split amounts do not sum to the total
//
// An unknown group is a NotFoundError. A missing ID or CreatedAt is filled
// in. The stored expense is returned and is visible to queries at once.
func (e *Engine) AddExpense(expense models.Expense) (models.Expense, error) {
	expense = expense.Clone()
	expense.Description = strings.TrimSpace(expense.Description)

	if err := e.validate.Struct(expense); err != nil {
		return models.Expense{}, e.reject("add_expense", fromValidator(err), "group_id", expense.GroupID)
	}

	group, err := e.GetGroup(expense.GroupID)
	if err != nil {
		return models.Expense{}, e.reject("add_expense", err, "group_id", expense.GroupID)
	}

	if err := validateExpense(&group, &expense); err != nil {
		return models.Expense{}, e.reject("add_expense", err,
			"group_id", expense.GroupID,
			"amount", expense.Amount.StringFixed(calculator.MinorUnitPlaces),
		)
	}

	if expense.ID == "" {
		expense.ID = e.newID()
	} else if _, err := e.store.GetExpense(expense.ID); err == nil {
		return models.Expense{}, e.reject("add_expense", invalid("id", "expense %s already exists", expense.ID))
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = e.now().Unix()
	}
	expense.Version = 0

	if err := e.store.CreateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	e.metrics.ExpensesAdded.WithLabelValues(string(expense.Category)).Inc()
	e.logger.Info("Expense added",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"paid_by", expense.PaidBy,
		"amount", expense.Amount.StringFixed(calculator.MinorUnitPlaces),
		"currency", expense.Currency,
		"splits_count", len(expense.Splits),
	)
	return expense.Clone(), nil
}

// validateExpense checks an expense against its group. It may fill in the
// currency from the group.
func validateExpense(group *models.Group, expense *models.Expense) error {
	if !expense.Amount.IsPositive() {
		return invalid("amount", "must be positive, got %s", expense.Amount)
	}
	if !calculator.HasMinorUnitPrecision(expense.Amount) {
		return invalid("amount", "more than %d decimal places: %s", calculator.MinorUnitPlaces, expense.Amount)
	}

	if expense.Currency == "" {
		expense.Currency = group.Currency
	} else if expense.Currency != group.Currency {
		return invalid("currency", "expense currency %s does not match group currency %s", expense.Currency, group.Currency)
	}

	if !group.HasMember(expense.PaidBy) {
		return invalid("paid_by", "payer %s is not a member of group %s", expense.PaidBy, group.ID)
	}

	seen := make(map[string]bool, len(expense.Splits))
	for _, s := range expense.Splits {
		if !group.HasMember(s.UserID) {
			return invalid("splits", "user %s is not a member of group %s", s.UserID, group.ID)
		}
		if seen[s.UserID] {
			return invalid("splits", "user %s has more than one split", s.UserID)
		}
		seen[s.UserID] = true

		if s.Amount.IsNegative() {
			return invalid("splits", "amount for %s cannot be negative", s.UserID)
		}
		if !calculator.HasMinorUnitPrecision(s.Amount) {
			return invalid("splits", "amount for %s has more than %d decimal places", s.UserID, calculator.MinorUnitPlaces)
		}
	}

	if sum := expense.SplitTotal(); !calculator.Reconciles(sum, expense.Amount) {
		return invalid("splits", "split amounts sum to %s, expected %s",
			sum.StringFixed(calculator.MinorUnitPlaces),
			expense.Amount.StringFixed(calculator.MinorUnitPlaces),
		)
	}
	return nil
}

// NewExpense builds an expense by splitting amount among the given shares
// with the chosen split type, then adds it. See calculator.Split for how
// shares are read.
func (e *Engine) NewExpense(expense models.Expense, splitType models.SplitType, shares []calculator.Share) (models.Expense, error) {
	splits, err := calculator.Split(splitType, expense.Amount, shares, expense.PaidBy)
	if err != nil {
		return models.Expense{}, e.reject("add_expense", invalid("splits", "%v", err), "group_id", expense.GroupID)
	}
	expense.Splits = splits
	return e.AddExpense(expense)
}

// GetExpense returns the expense with the given ID.
func (e *Engine) GetExpense(expenseID string) (models.Expense, error) {
	expense, err := e.store.GetExpense(expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Expense{}, notFound("expense", expenseID)
	}
	return expense, err
}

// ListExpenses returns the expenses of a group, or of every group when
// groupID is empty, newest first. Expenses with the same CreatedAt are
// listed most recently added first.
func (e *Engine) ListExpenses(groupID string) ([]models.Expense, error) {
	if groupID != "" {
		if _, err := e.GetGroup(groupID); err != nil {
			return nil, err
		}
	}

	stored := e.store.ListExpenses(groupID)
	expenses := make([]models.Expense, len(stored))
	for i := range stored {
		expenses[len(stored)-1-i] = stored[i]
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt > expenses[j].CreatedAt
	})
	return expenses, nil
}

// SettleSplit marks userID's split in an expense as paid.
// Settling an already settled split is a no-op.
func (e *Engine) SettleSplit(expenseID, userID string) error {
	return e.setSettled(expenseID, userID, true)
}

// UnsettleSplit reverts a settled split to unpaid.
// Unsettling an unsettled split is a no-op.
func (e *Engine) UnsettleSplit(expenseID, userID string) error {
	return e.setSettled(expenseID, userID, false)
}

func (e *Engine) setSettled(expenseID, userID string, settled bool) error {
	op := "settle_split"
	action := "settle"
	if !settled {
		op = "unsettle_split"
		action = "unsettle"
	}

	expense, err := e.GetExpense(expenseID)
	if err != nil {
		return e.reject(op, err, "user_id", userID)
	}
	split, ok := expense.Split(userID)
	if !ok {
		return e.reject(op, notFound("split", expenseID+"/"+userID), "expense_id", expenseID)
	}
	if split.Settled == settled {
		return nil
	}

	split.Settled = settled
	expense.Version++
	if err := e.store.UpdateExpense(expense); err != nil {
		return err
	}

	e.metrics.SplitToggles.WithLabelValues(action).Inc()
	e.logger.Info("Split settlement changed",
		"expense_id", expenseID,
		"user_id", userID,
		"settled", settled,
		"version", expense.Version,
	)
	return nil
}

// groupTotal is the sum of every expense amount in a group.
func groupTotal(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}
	return total
}
