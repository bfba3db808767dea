package models

import "strings"

// Group represents a family that shares expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Home", "Summer trip").
	Name string

	// Members is the current member list. Every payment is split among all of them.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberNames returns the names used for payment attribution, in member order.
func MemberNames(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// HasMember reports whether name belongs to a current member.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Member represents one person in a group.
type Member struct {
	// Name is the display name payments are attributed to.
	Name string

	// Email identifies the member within the group.
	Email string
}

// DisplayName returns Name, or the local part of Email when no name was given.
func (m Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	name, _, _ := strings.Cut(m.Email, "@")
	return name
}
