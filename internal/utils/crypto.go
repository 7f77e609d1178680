// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const upperAlphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns an upper-case alphanumeric code.
func GenerateCode(length int) (string, error) {
	return randomFrom(upperAlphanumeric, length)
}

// ReferralCode is the first three letters of the trader name, upper-cased,
// followed by an 8 character random suffix.
func ReferralCode(traderName string) (string, error) {
	suffix, err := GenerateCode(8)
	if err != nil {
		return "", err
	}
	prefix := []rune(strings.TrimSpace(traderName))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.ToUpper(string(prefix)) + "-" + suffix, nil
}

func randomFrom(charset string, length int) (string, error) {
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
