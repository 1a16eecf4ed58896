package models

import "github.com/shopspring/decimal"

// Group is a named set of members who share expenses in one currency.
type Group struct {
	// ID is the unique identifier for the group (UUID format when generated).
	ID string

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	Name string `validate:"required"`

	// Emoji is the icon shown next to the group name.
	Emoji string

	// Members is the ordered list of users in this group.
	// Order is insertion order and only matters for display.
	Members []User `validate:"required,min=1,dive"`

	// Currency is the code every expense in the group must use.
	Currency string `validate:"required"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is in the group's member list.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the member IDs in display order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// Clone returns a copy of the group that shares no slices with g.
func (g Group) Clone() Group {
	g.Members = append([]User(nil), g.Members...)
	return g
}

// GroupSummary is a group as seen by one viewer.
type GroupSummary struct {
	Group

	// Balance is the viewer's net balance in this group.
	Balance decimal.Decimal

	// TotalSpent is the sum of every expense amount in the group.
	TotalSpent decimal.Decimal
}
