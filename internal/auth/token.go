package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// opaqueTokenBytes gives 256 bits of entropy per token; uniqueness is not
// separately enforced.
const opaqueTokenBytes = 32

// NewOpaqueToken returns a cryptographically random single-use token used for
// email verification and password-reset links.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
