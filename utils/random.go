package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const referenceBytes = 4

// GenerateReference produces a short human-facing booking confirmation code,
// e.g. "BK-7F3A9C01".
func GenerateReference() (string, error) {
	byt := make([]byte, referenceBytes)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return "BK-" + strings.ToUpper(hex.EncodeToString(byt)), nil
}
