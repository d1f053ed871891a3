package security

import (
	"errors"
	"fmt"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

var _ ports.CredentialVerifier = (*BcryptVerifier)(nil)

// BcryptVerifier stores bcrypt hashes and compares against them.
type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), v.cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hashed), nil
}

func (v *BcryptVerifier) Verify(stored, presented string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return domain.ErrUnauthorized
	}
	return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
}
