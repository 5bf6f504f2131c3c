package cryptox

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !h.Verify("s3cret", hashed) {
		t.Fatalf("expected hash %q to verify its own password", hashed)
	}
}

func TestHash_SaltRandomization(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password are identical: %q", first)
	}
	if !h.Verify("same password", first) || !h.Verify("same password", second) {
		t.Fatalf("both salted hashes must still verify the password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Verify("battery staple", hashed) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestVerify_MalformedStoredHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$xx$broken"} {
		if h.Verify("anything", stored) {
			t.Fatalf("malformed stored value %q must fail closed", stored)
		}
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	h := NewHasher(1000)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
	h = NewHasher(bcrypt.MinCost)
	if h.cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d to be kept, got %d", bcrypt.MinCost, h.cost)
	}
}
