package common

import (
	"crypto/rand"
	"math/big"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// KeyLength is the length of generated API keys (the ics_key column).
const KeyLength = 32

// GenerateKey returns a random alphanumeric string of length n, drawn from
// crypto/rand. It is used for the per-user calendar feed key, which is set
// once at account creation.
//
// It returns an error only if the random number generator fails.
func GenerateKey(n int) (string, error) {
	max := big.NewInt(int64(len(keyAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = keyAlphabet[idx.Int64()]
	}
	return string(b), nil
}
