package credentials

import "testing"

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("aluno@example.com", "segredo123")

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{name: "exact match", email: "aluno@example.com", password: "segredo123", want: true},
		{name: "wrong password", email: "aluno@example.com", password: "segredo124", want: false},
		{name: "wrong email", email: "outro@example.com", password: "segredo123", want: false},
		{name: "email case differs", email: "Aluno@example.com", password: "segredo123", want: false},
		{name: "padded email", email: " aluno@example.com", password: "segredo123", want: false},
		{name: "empty", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.Verify(tc.email, tc.password); got != tc.want {
				t.Fatalf("Verify(%q, %q) = %v, want %v", tc.email, tc.password, got, tc.want)
			}
		})
	}
}

func TestStaticVerifierWithoutConfiguredPairRejectsEverything(t *testing.T) {
	v := NewStaticVerifier("", "")
	if v.Verify("", "") {
		t.Fatalf("Verify() accepted blank credentials on an unconfigured verifier")
	}
}

func TestVerifierFunc(t *testing.T) {
	var gotEmail string
	v := VerifierFunc(func(email, password string) bool {
		gotEmail = email
		return password == "ok"
	})
	if !v.Verify("a@b.c", "ok") {
		t.Fatalf("VerifierFunc did not forward result")
	}
	if gotEmail != "a@b.c" {
		t.Fatalf("VerifierFunc forwarded email %q", gotEmail)
	}
}
