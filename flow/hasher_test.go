package flow

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4) // low cost to keep the test fast

	hash, err := hasher.Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Compare("pw123456", hash) {
		t.Error("expected matching password to verify")
	}
	if hasher.Compare("wrongpw", hash) {
		t.Error("expected non-matching password to fail")
	}
}

func TestBcryptHasherSaltedPerCall(t *testing.T) {
	hasher := NewBcryptHasher(4)

	h1, err := hasher.Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := hasher.Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ (per-call salt)")
	}
}

func TestBcryptHasherMalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(4)

	// Must return false, never panic.
	if hasher.Compare("pw123456", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to compare false")
	}
	if hasher.Compare("pw123456", "") {
		t.Error("expected empty hash to compare false")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	if hasher.Cost != 12 {
		t.Errorf("expected default cost 12, got %d", hasher.Cost)
	}
}
