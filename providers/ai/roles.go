package ai

import (
	"fmt"
	"sort"
)

// RoleTable maps conversation roles to the role tokens a provider expects on
// the wire. A role missing from the table cannot be sent to that provider.
type RoleTable map[MessageRole]string

// WireRole translates role, failing with ErrUnsupportedRole when the table
// has no entry for it.
func (t RoleTable) WireRole(role MessageRole) (string, error) {
	wire, ok := t[role]
	if !ok {
		return "", fmt.Errorf("%w: %q (accepted: %v)", ErrUnsupportedRole, role, t.Roles())
	}
	return wire, nil
}

// Roles lists the roles in the table, sorted.
func (t RoleTable) Roles() []MessageRole {
	roles := make([]MessageRole, 0, len(t))
	for role := range t {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
