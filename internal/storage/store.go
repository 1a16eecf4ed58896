// Package storage provides abstractions for the ledger's session store.
package storage

import (
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a group or expense ID is unknown to the store.
var ErrNotFound = errors.New("not found")

// Store defines the record-keeping operations the ledger engine needs.
// This abstraction keeps the engine independent of where records live.
//
// Implementations return copies: mutating a returned value never changes
// stored state. Callers persist changes through the Update methods.
type Store interface {
	// CreateGroup stores a new group. The group ID must be set and unused.
	CreateGroup(group models.Group) error

	// GetGroup retrieves a group by its ID.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(groupID string) (models.Group, error)

	// ListGroups returns every group in creation order.
	ListGroups() []models.Group

	// UpdateGroup replaces an existing group.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	UpdateGroup(group models.Group) error

	// CreateExpense stores a new expense. The expense ID must be set and unused.
	CreateExpense(expense models.Expense) error

	// GetExpense retrieves an expense by its ID.
	// Returns an error wrapping ErrNotFound if the expense does not exist.
	GetExpense(expenseID string) (models.Expense, error)

	// ListExpenses returns the expenses of one group, or of every group when
	// groupID is empty, in insertion order.
	ListExpenses(groupID string) []models.Expense

	// UpdateExpense replaces an existing expense.
	// Returns an error wrapping ErrNotFound if the expense does not exist.
	UpdateExpense(expense models.Expense) error
}
