// Package memory provides the session-lifetime implementation of storage.Store.
package memory

import (
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps groups and expenses in maps for the lifetime of one session.
// Insertion order is tracked separately so listings are stable.
//
// Store is not safe for concurrent use.
type Store struct {
	groups     map[string]models.Group
	groupOrder []string

	expenses     map[string]models.Expense
	expenseOrder []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		groups:   make(map[string]models.Group),
		expenses: make(map[string]models.Expense),
	}
}

// CreateGroup stores a copy of group.
func (s *Store) CreateGroup(group models.Group) error {
	if group.ID == "" {
		return fmt.Errorf("group ID required")
	}
	if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("group already exists: %s", group.ID)
	}
	s.groups[group.ID] = group.Clone()
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

// GetGroup returns a copy of the group with the given ID.
func (s *Store) GetGroup(groupID string) (models.Group, error) {
	group, ok := s.groups[groupID]
	if !ok {
		return models.Group{}, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return group.Clone(), nil
}

// ListGroups returns copies of all groups in creation order.
func (s *Store) ListGroups() []models.Group {
	groups := make([]models.Group, 0, len(s.groupOrder))
	for _, id := range s.groupOrder {
		groups = append(groups, s.groups[id].Clone())
	}
	return groups
}

// UpdateGroup replaces the stored group with a copy of group.
func (s *Store) UpdateGroup(group models.Group) error {
	if _, ok := s.groups[group.ID]; !ok {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
	}
	s.groups[group.ID] = group.Clone()
	return nil
}

// CreateExpense stores a copy of expense.
func (s *Store) CreateExpense(expense models.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense ID required")
	}
	if _, exists := s.expenses[expense.ID]; exists {
		return fmt.Errorf("expense already exists: %s", expense.ID)
	}
	s.expenses[expense.ID] = expense.Clone()
	s.expenseOrder = append(s.expenseOrder, expense.ID)
	return nil
}

// GetExpense returns a copy of the expense with the given ID.
func (s *Store) GetExpense(expenseID string) (models.Expense, error) {
	expense, ok := s.expenses[expenseID]
	if !ok {
		return models.Expense{}, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense.Clone(), nil
}

// ListExpenses returns copies of the matching expenses in insertion order.
func (s *Store) ListExpenses(groupID string) []models.Expense {
	var expenses []models.Expense
	for _, id := range s.expenseOrder {
		e := s.expenses[id]
		if groupID != "" && e.GroupID != groupID {
			continue
		}
		expenses = append(expenses, e.Clone())
	}
	return expenses
}

// UpdateExpense replaces the stored expense with a copy of expense.
func (s *Store) UpdateExpense(expense models.Expense) error {
	if _, ok := s.expenses[expense.ID]; !ok {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}
	s.expenses[expense.ID] = expense.Clone()
	return nil
}
