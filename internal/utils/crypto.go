// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const orderNumberPrefix = "LMM"

func GenerateRandomString(charset string, length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateOrderNumber returns a human-readable order number with an
// 8-character random suffix. Uniqueness is enforced by the database
// constraint; callers retry on collision.
func GenerateOrderNumber() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix, err := GenerateRandomString(charset, 8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", orderNumberPrefix, suffix), nil
}
