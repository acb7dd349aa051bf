package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestVerifyTokenRoundTrip(t *testing.T) {
	raw, err := MintToken("ada@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	claims, err := VerifyToken(raw, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("Expected ada@example.com, got %s", claims.Email)
	}
}

func TestVerifyTokenMissing(t *testing.T) {
	_, err := VerifyToken("", testSecret)
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	raw, err := MintToken("ada@example.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	_, err = VerifyToken(raw, testSecret)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	raw, err := MintToken("ada@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	_, err = VerifyToken(raw, []byte("another-secret"))
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("Expected ErrMalformedToken, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-jwt", testSecret)
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("Expected ErrMalformedToken, got %v", err)
	}
}

func TestMintTokenEmptySecret(t *testing.T) {
	if _, err := MintToken("ada@example.com", nil, time.Hour); err == nil {
		t.Error("Expected error for empty secret")
	}
}
