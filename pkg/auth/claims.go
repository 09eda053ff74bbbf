package auth

import (
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionPayload captures the data available when minting a session token.
type SessionPayload struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	Username  string
	Role      enums.Role
	SessionID string
}

// SessionClaims is the signed content of the session cookie. The registered
// ID (jti) doubles as the Redis session key.
type SessionClaims struct {
	UserID    uuid.UUID  `json:"user_id"`
	ProfileID uuid.UUID  `json:"profile_id"`
	Username  string     `json:"username"`
	Role      enums.Role `json:"role"`
	jwt.RegisteredClaims
}
