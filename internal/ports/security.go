package ports

import (
	"time"
)

// CredentialVerifier hashes secrets for storage and checks a presented secret
// against a stored value.
type CredentialVerifier interface {
	Hash(secret string) (string, error)
	Verify(stored, presented string) error
}

type SessionClaims struct {
	UserID    int64
	SessionID string
	ExpiresAt time.Time
}

// TokenIssuer turns a successful login into a bearer token and back.
type TokenIssuer interface {
	Issue(userID int64) (string, SessionClaims, error)
	Parse(token string) (SessionClaims, error)
}
