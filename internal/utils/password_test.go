package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	a, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical")
	}
}
