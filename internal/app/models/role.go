/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the Role enum and the role resolution cascade applied to a
hydrated User record.
*/
package models

// Role is one of six ordered permission levels derived from a User record's
// flags. The order follows the resolution cascade: a later value overrides an
// earlier one, so Roles compare by cascade rank, not by semantic seniority.
type Role int

const (
	RoleGuest Role = iota
	RoleSiteOwner
	RoleSiteMod
	RoleMod
	RoleOp
	RoleSupporter
)

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleSiteOwner:
		return "site_owner"
	case RoleSiteMod:
		return "site_mod"
	case RoleMod:
		return "mod"
	case RoleOp:
		return "op"
	case RoleSupporter:
		return "supporter"
	default:
		return "unknown"
	}
}

// AtLeast reports whether r ranks at or above min in the cascade order.
// Command gating uses this to decide whether a sender may run a command.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// IsModerator reports whether the user holds an unassigned operator slot,
// which the service grants to room moderators.
func (u *User) IsModerator() bool {
	return u.OperatorID != "" && u.AssignedBy == ""
}

// IsOperator reports whether the user holds an operator slot assigned by
// another user.
func (u *User) IsOperator() bool {
	return u.OperatorID != "" && u.AssignedBy != ""
}

// Role derives the user's effective permission role.
//
// The cascade below is evaluated top to bottom and later rules override earlier
// ones; the last matching rule wins, not the first. In particular a supporter
// or gold flag overrides everything before it, so an admin who is also gold
// resolves to RoleSupporter. That matches the service's observed behavior and
// must not be reordered without changing what every consumer sees.
func (u *User) Role() Role {
	role := RoleGuest

	if u.IsAdmin {
		role = RoleSiteOwner
	}

	if u.IsSiteMod {
		role = RoleSiteMod
	}

	if u.IsModerator() {
		role = RoleMod
	}

	if u.IsOperator() {
		role = RoleOp
	}

	if u.IsSupporter || u.IsGold {
		role = RoleSupporter
	}

	return role
}
