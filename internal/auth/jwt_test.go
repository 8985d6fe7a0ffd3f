package auth

import (
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)

	token, err := j.Sign("user-42")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	sub, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if sub != "user-42" {
		t.Errorf("sub = %q, want user-42", sub)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a", time.Hour).Sign("user-1")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := NewJWT("secret-b", time.Hour).Verify(token); err == nil {
		t.Fatal("token signed with a different secret must fail")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	// Negative ttl falls back to the 7-day default in NewJWT, so force an
	// already-expired lifetime directly.
	j := NewJWT("test-secret", time.Hour)
	j.ttl = -time.Hour

	token, err := j.Sign("user-1")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Fatal("expired token must fail verification")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)
	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := j.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted garbage", tok)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2bcrypt")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "hunter2bcrypt" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !ComparePassword(hash, "hunter2bcrypt") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
