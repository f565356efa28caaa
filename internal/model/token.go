package model

import "github.com/google/uuid"

// Identity is the authenticated caller, resolved from a token at the
// boundary and threaded explicitly through every operation that needs it.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenManager signs and validates session tokens.
type TokenManager interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ParseToken(token string) (Identity, error)
}
