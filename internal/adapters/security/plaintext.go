package security

import (
	"crypto/subtle"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var _ ports.CredentialVerifier = PlaintextVerifier{}

// PlaintextVerifier compares stored secrets verbatim. It exists only for
// databases seeded before hashing was introduced and is enabled by the
// legacy_plaintext_passwords setting. Do not use it for new deployments.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(secret string) (string, error) {
	return secret, nil
}

func (PlaintextVerifier) Verify(stored, presented string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1 {
		return nil
	}
	return domain.ErrUnauthorized
}
