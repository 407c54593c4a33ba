package models

// ContactUser is a derived counterparty: another user the viewer has
// shared at least one personal expense with. Never persisted.
type ContactUser struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// ContactGroup is a derived group summary for a group the viewer
// belongs to. Never persisted.
type ContactGroup struct {
	ID          string
	Name        string
	Description string
	MemberCount int
}

// Contacts is the result of contact derivation for one viewer: both
// lists sorted ascending by name, ties broken by ID.
type Contacts struct {
	Users  []ContactUser
	Groups []ContactGroup
}
