package auth

import "testing"

func TestNewOpaqueToken(t *testing.T) {
	token, err := NewOpaqueToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != opaqueTokenBytes*2 {
		t.Fatalf("expected %d hex characters, got %d", opaqueTokenBytes*2, len(token))
	}

	other, err := NewOpaqueToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == other {
		t.Fatal("expected successive tokens to differ")
	}
}
