package credentials

import (
	"crypto/subtle"
	"strings"
)

// Verifier decides whether an email/password pair grants access to the
// academy dashboard. Swapping the implementation (e.g. for an identity
// provider) does not touch the login handler.
type Verifier interface {
	Verify(email, password string) bool
}

// StaticVerifier accepts exactly one configured credential pair.
type StaticVerifier struct {
	email    string
	password string
}

// NewStaticVerifier builds a verifier for the given pair. Blank values never match.
func NewStaticVerifier(email, password string) *StaticVerifier {
	return &StaticVerifier{email: email, password: password}
}

// Verify compares both values exactly, without normalization, in constant time.
func (s *StaticVerifier) Verify(email, password string) bool {
	if s == nil || strings.TrimSpace(s.email) == "" || s.password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return emailOK && passwordOK
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(email, password string) bool

// Verify calls f.
func (f VerifierFunc) Verify(email, password string) bool {
	return f(email, password)
}

var (
	_ Verifier = (*StaticVerifier)(nil)
	_ Verifier = VerifierFunc(nil)
)
