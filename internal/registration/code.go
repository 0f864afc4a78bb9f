package registration

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// accessCodeBytes yields 6 hex characters, e.g. "A3F09B". Hard to guess is
// the goal; the code is not bound to anything cryptographic.
const accessCodeBytes = 3

// GenerateAccessCode produces a random upper-cased hex access code.
func GenerateAccessCode() (string, error) {
	buf := make([]byte, accessCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
