package types

import "github.com/google/uuid"

// TokenClaims is the session state extracted from a validated JWT. It is
// injected into the request context by the auth middleware; nothing reads
// session state from globals.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}
