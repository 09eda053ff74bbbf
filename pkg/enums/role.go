package enums

import (
	"fmt"
	"strings"
)

// Role is the marketplace role stored on a profile.
type Role string

const (
	RoleArtisan Role = "artisan"
	RoleBuyer   Role = "buyer"
)

var validRoles = []Role{RoleArtisan, RoleBuyer}

// IsValid checks whether the given role matches the canonical enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw strings into Role.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
