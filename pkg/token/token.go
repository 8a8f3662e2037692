// Package token generates random codes players type or share
package token

import (
	"crypto/rand"
	"math/big"
)

// CodeAlphabet is the set of characters a code is made of
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a crypto-secure random code of length n
// Only characters from CodeAlphabet are used, so the code reads the same in upper case.
func Generate(n int) (string, error) {
	size := big.NewInt(int64(len(CodeAlphabet)))
	code := make([]byte, n)
	for i := range code {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}

		code[i] = CodeAlphabet[idx.Int64()]
	}

	return string(code), nil
}
