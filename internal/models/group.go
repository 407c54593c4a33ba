package models

// Member roles within a group.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a named roster of users that expenses can be
// recorded against.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name (non-empty, trimmed).
	Name string

	// Description is an optional free-form description.
	Description string

	// CreatedBy is the user ID of the creator. The creator is always
	// present in Members with the admin role.
	CreatedBy string

	// Members is the roster. User IDs are unique within a group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is one entry in a group roster.
type Member struct {
	// UserID references the member's user account.
	UserID string

	// Role is RoleAdmin or RoleMember.
	Role string

	// JoinedAt is the Unix timestamp when the user joined the group.
	JoinedAt int64
}

// MemberFor returns the roster entry for the given user, or nil if the
// user is not a member.
func (g *Group) MemberFor(userID string) *Member {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// IsMember reports whether the user appears in the roster.
func (g *Group) IsMember(userID string) bool {
	return g.MemberFor(userID) != nil
}

// IsAdmin reports whether the user is a member with the admin role.
func (g *Group) IsAdmin(userID string) bool {
	m := g.MemberFor(userID)
	return m != nil && m.Role == RoleAdmin
}
