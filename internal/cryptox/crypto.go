// Package cryptox wraps password hashing for the user store. Hashes are
// produced with bcrypt, so every call salts with fresh random bytes and the
// work factor travels inside the encoded value.
package cryptox

import "golang.org/x/crypto/bcrypt"

// Hasher generates and verifies bcrypt password hashes with a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// range bcrypt supports fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the encoded bcrypt hash of password. A fresh salt is drawn on
// every call, so hashing the same password twice yields different values.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored encoded hash. The salt
// and work factor are read from stored, and the comparison is constant time.
//
// Verify fails closed: a malformed or truncated stored value yields false
// rather than an error.
func (h *Hasher) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
