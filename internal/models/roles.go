package models

import "slices"

// Role is the capability tag attached to an authenticated console session.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
)

// KnownRoles lists the roles that console screens can be granted to.
var KnownRoles = []Role{RoleAdmin, RoleAccountant}

func (r Role) String() string { return string(r) }

// Known reports whether r is one of KnownRoles.
func (r Role) Known() bool {
	return slices.Contains(KnownRoles, r)
}

// HasRole reports whether role is a member of set.
func HasRole(set []Role, role Role) bool {
	return slices.Contains(set, role)
}
