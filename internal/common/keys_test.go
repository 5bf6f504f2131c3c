package common

import (
	"strings"
	"testing"
)

func TestGenerateKey_LengthAndAlphabet(t *testing.T) {
	key, err := GenerateKey(KeyLength)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	if len(key) != KeyLength {
		t.Fatalf("expected %d characters, got %d (%q)", KeyLength, len(key), key)
	}
	for _, r := range key {
		if !strings.ContainsRune(keyAlphabet, r) {
			t.Fatalf("unexpected character %q in key %q", r, key)
		}
	}
}

func TestGenerateKey_Distinct(t *testing.T) {
	a, err := GenerateKey(KeyLength)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	b, err := GenerateKey(KeyLength)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	if a == b {
		t.Fatalf("two generated keys are identical: %q", a)
	}
}

func TestGenerateKey_ZeroLength(t *testing.T) {
	key, err := GenerateKey(0)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}
