// Package seed loads the demo users, groups and expenses into a ledger.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
)

// Currency is the code used by every demo group.
const Currency = "INR"

// Users are the demo identities. The first one is the default current user.
var Users = []models.User{
	{ID: "u1", Name: "Sagar Patel", Email: "sagar@example.com"},
	{ID: "u2", Name: "Priya Sharma", Email: "priya@example.com"},
	{ID: "u3", Name: "Rahul Mehra", Email: "rahul@example.com"},
	{ID: "u4", Name: "Ananya Iyer", Email: "ananya@example.com"},
	{ID: "u5", Name: "Vikram Nair", Email: "vikram@example.com"},
}

func members(idx ...int) []models.User {
	out := make([]models.User, len(idx))
	for i, n := range idx {
		out[i] = Users[n]
	}
	return out
}

// Groups returns the demo groups.
func Groups() []models.Group {
	return []models.Group{
		{ID: "g1", Name: "Goa Trip", Emoji: "🏖️", Members: members(0, 1, 2, 3), Currency: Currency},
		{ID: "g2", Name: "Flat 4B", Emoji: "🏠", Members: members(0, 1, 4), Currency: Currency},
		{ID: "g3", Name: "Office Lunch", Emoji: "🍜", Members: members(0, 2, 3, 4), Currency: Currency},
		{ID: "g4", Name: "Weekend Trek", Emoji: "🥾", Members: members(0, 3), Currency: Currency},
	}
}

type split struct {
	user    int
	amount  int64
	settled bool
}

func expense(id, groupID, desc string, amount int64, payer int, cat models.Category, at string, splits ...split) models.Expense {
	created, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(fmt.Sprintf("seed: bad timestamp %q: %v", at, err))
	}
	e := models.Expense{
		ID:          id,
		GroupID:     groupID,
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
		Currency:    Currency,
		PaidBy:      Users[payer].ID,
		Category:    cat,
		CreatedAt:   created.Unix(),
	}
	for _, s := range splits {
		e.Splits = append(e.Splits, models.ExpenseSplit{
			UserID:  Users[s.user].ID,
			Amount:  decimal.NewFromInt(s.amount),
			Settled: s.settled,
		})
	}
	return e
}

// Expenses returns the demo expenses.
func Expenses() []models.Expense {
	return []models.Expense{
		expense("e1", "g1", "Hotel booking", 6000, 0, models.CategoryAccommodation, "2025-02-20T10:00:00Z",
			split{0, 1500, true}, split{1, 1500, false}, split{2, 1500, false}, split{3, 1500, false}),
		expense("e2", "g1", "Cab to airport", 1200, 1, models.CategoryTransport, "2025-02-20T07:30:00Z",
			split{0, 300, false}, split{1, 300, true}, split{2, 300, false}, split{3, 300, false}),
		expense("e3", "g1", "Dinner at beach shack", 2400, 2, models.CategoryFood, "2025-02-21T20:00:00Z",
			split{0, 600, false}, split{1, 600, false}, split{2, 600, true}, split{3, 600, false}),
		expense("e4", "g2", "Electricity bill", 1800, 1, models.CategoryUtilities, "2025-02-15T09:00:00Z",
			split{0, 600, false}, split{1, 600, true}, split{4, 600, false}),
		expense("e5", "g3", "Pizza Friday", 960, 0, models.CategoryFood, "2025-02-14T13:00:00Z",
			split{0, 240, true}, split{2, 240, true}, split{3, 240, true}, split{4, 240, true}),
	}
}

// Load adds the demo groups and expenses to e.
func Load(e *ledger.Engine) error {
	for _, g := range Groups() {
		if _, err := e.CreateGroup(g); err != nil {
			return fmt.Errorf("failed to seed group %s: %w", g.ID, err)
		}
	}
	for _, exp := range Expenses() {
		if _, err := e.AddExpense(exp); err != nil {
			return fmt.Errorf("failed to seed expense %s: %w", exp.ID, err)
		}
	}
	return nil
}
