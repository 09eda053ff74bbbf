package types

import (
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	Username  string
	Role      enums.Role
}

// IsArtisan reports whether the actor sells on the marketplace.
func (a Actor) IsArtisan() bool {
	return a.Role == enums.RoleArtisan
}
