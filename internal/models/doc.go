// Package models defines the core domain models for the split ledger.
//
// # Stored Models
//
// The ledger engine stores two kinds of records:
//   - Group: a named, ordered set of members sharing one currency
//   - Expense: one payment by a member, split among members as ExpenseSplits
//
// Users are identities carried inside groups. They are immutable once the
// engine has seen them.
//
// # Derived Models
//
// Balances are never stored. The following are computed on demand from the
// current expense set, always from the viewpoint of an explicit viewer:
//   - GroupSummary: a group with the viewer's net balance
//   - Friend: another user with the viewer's net balance across shared groups
//   - BalanceSummary: the viewer's owed/owes totals per currency
//   - DebtEdge: one transfer of a simplified settlement plan
//
// # Sign Convention
//
// A positive balance means others owe the viewer. A negative balance means
// the viewer owes others. Zero means settled up.
//
// # Design Principles
//
//  1. **Explicit viewpoint**: no model embeds a "current user"
//  2. **Exact money**: amounts are decimal.Decimal with at most 2 places
//  3. **Avoid circular references**: records reference each other by ID
package models
