package models

import "github.com/shopspring/decimal"

// Friend is another user paired with the viewer's net balance against them.
// Positive = they owe the viewer, negative = the viewer owes them.
type Friend struct {
	User     User
	Balance  decimal.Decimal
	Currency string
}

// BalanceSummary aggregates a viewer's group balances in one currency.
type BalanceSummary struct {
	Currency string

	// Owed is the sum of the viewer's positive group balances.
	Owed decimal.Decimal

	// Owes is the sum of the viewer's negative group balances, as a positive amount.
	Owes decimal.Decimal

	// Net is Owed minus Owes.
	Net decimal.Decimal
}

// DebtEdge is one transfer that clears part of a group's obligations.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount decimal.Decimal
}
