package models

// User represents a person who can belong to groups and split expenses.
// A User is an identity: once the ledger has seen an ID, its fields never change.
type User struct {
	// ID is the opaque unique identifier of the user.
	ID string `validate:"required"`

	// Name is the display name of the user.
	Name string `validate:"required"`

	// Email is the user's contact address.
	Email string `validate:"omitempty,email"`

	// AvatarURL is an optional reference to a profile picture.
	AvatarURL string
}
