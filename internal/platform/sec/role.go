// Copyright (c) 2026 Inkfold. All rights reserved.
// Author: dev@inkfold.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access; may promote pending comics
	RoleAdmin UserRole = "admin"

	// Can submit and correct pending comics and manage live pages
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users (advertisers)
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
