package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const ValidationCodeLength = 6

// GenerateValidationCode returns length random decimal digits drawn from
// crypto/rand.
func GenerateValidationCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)

	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generate validation code: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
