package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// invite tokens ride in URLs, so they stay hex rather than base64
const tokenBytes = 32

// NewOpaque returns a 64-character hex token with 256 bits of entropy.
// Used for invitation links and email verification.
func NewOpaque() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
