package randomgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
)

// RandomGenerator produces opaque identifiers such as request ids.
type RandomGenerator struct{}

func NewRandomGenerator() contract.IRandomGenerator {
	return &RandomGenerator{}
}

var _ (contract.IRandomGenerator) = (*RandomGenerator)(nil)

// GenerateRandomToken returns n random bytes hex encoded.
func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
