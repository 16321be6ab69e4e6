package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Token is a short opaque identifier returned in API responses.
// Tokens are never persisted or looked up; they only identify objects
// within a single response.
type Token string

// NewPatientToken generates a patient token (PAT-XXXXXXXX)
func NewPatientToken() Token {
	return newToken("PAT")
}

// NewDocumentToken generates a document token (DOC-XXXXXXXX)
func NewDocumentToken() Token {
	return newToken("DOC")
}

func newToken(prefix string) Token {
	id := uuid.New()
	return Token(fmt.Sprintf("%s-%X", prefix, id[:4]))
}

// String returns the string representation
func (t Token) String() string {
	return string(t)
}

// HasPrefix checks the token's type prefix
func (t Token) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(t), prefix+"-")
}
