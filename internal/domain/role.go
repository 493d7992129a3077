package domain

import (
	"fmt"
	"strings"
)

// Role is one of the two fixed participant identities within a room.
type Role string

const (
	RoleDherru Role = "Dherru"
	RoleNivi   Role = "Nivi"
)

// Roles lists every participant role in display order.
var Roles = []Role{RoleDherru, RoleNivi}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidRole, s)
}

func (r Role) Valid() bool {
	return r == RoleDherru || r == RoleNivi
}

// Partner returns the other participant.
func (r Role) Partner() Role {
	if r == RoleDherru {
		return RoleNivi
	}
	return RoleDherru
}

func (r Role) String() string {
	return string(r)
}
