package types

import "testing"

// TestTokenFormat verifies token prefix and length
func TestTokenFormat(t *testing.T) {
	pat := NewPatientToken()
	doc := NewDocumentToken()

	if !pat.HasPrefix("PAT") {
		t.Errorf("expected PAT prefix, got %s", pat)
	}
	if !doc.HasPrefix("DOC") {
		t.Errorf("expected DOC prefix, got %s", doc)
	}
	if len(pat) != len("PAT-")+8 {
		t.Errorf("expected 8-char suffix, got %s", pat)
	}
}

// TestTokenUniqueness checks consecutive tokens differ
func TestTokenUniqueness(t *testing.T) {
	seen := map[Token]bool{}
	for i := 0; i < 100; i++ {
		tok := NewPatientToken()
		if seen[tok] {
			t.Fatalf("duplicate token %s", tok)
		}
		seen[tok] = true
	}
}
