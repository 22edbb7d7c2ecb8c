package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// NewApprovalToken generates an unguessable single-use token of the given
// length. It returns a base32 encoded string (without padding) truncated to
// the desired length.
func NewApprovalToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}
