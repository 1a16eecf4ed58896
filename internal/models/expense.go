package models

import "github.com/shopspring/decimal"

// Category tags an expense for display and reporting.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SplitType selects how an expense total is divided among members.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitExact      SplitType = "exact"
	SplitPercentage SplitType = "percentage"
)

// Expense is one payment made by a group member on behalf of others.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format when generated).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string `validate:"required"`

	// Description is the human-readable label (e.g., "Hotel booking").
	Description string `validate:"required,max=200"`

	// Amount is the total paid. Positive, at most 2 decimal places.
	Amount decimal.Decimal

	// Currency must match the owning group's currency.
	Currency string

	// PaidBy is the ID of the member who paid.
	PaidBy string `validate:"required"`

	// Splits lists how much each member owes of Amount.
	Splits []ExpenseSplit `validate:"required,min=1,dive"`

	// Category tags the expense.
	Category Category `validate:"required,oneof=food transport accommodation entertainment utilities shopping other"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Version increases by one on every split settlement change.
	// Future: compare-and-swap key for multi-device sync.
	Version int64
}

// ExpenseSplit is one member's share of an expense.
type ExpenseSplit struct {
	// UserID is the member who owes this share.
	UserID string `validate:"required"`

	// Amount is the share owed. Non-negative, at most 2 decimal places.
	Amount decimal.Decimal

	// Settled is true once the share has been paid back.
	Settled bool
}

// Split returns the split for userID and whether it exists.
func (e *Expense) Split(userID string) (*ExpenseSplit, bool) {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i], true
		}
	}
	return nil, false
}

// SplitTotal is the sum of all split amounts.
func (e *Expense) SplitTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range e.Splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

// Clone returns a copy of the expense that shares no slices with e.
func (e Expense) Clone() Expense {
	e.Splits = append([]ExpenseSplit(nil), e.Splits...)
	return e
}
