package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	secret := "test-secret"
	claims := TokenClaims{
		Sub:      "aluno@example.com",
		Locale:   "pt",
		IssuedAt: time.Now().Unix(),
		Exp:      time.Now().Add(time.Hour).Unix(),
		Issuer:   TokenIssuer,
	}
	token, err := SignJWT(secret, claims)
	if err != nil {
		t.Fatalf("SignJWT() unexpected error: %v", err)
	}
	parsed, err := VerifyJWT(secret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() unexpected error: %v", err)
	}
	if *parsed != claims {
		t.Fatalf("VerifyJWT() returned %+v, want %+v", parsed, claims)
	}
}

func TestVerifyJWTInvalidSignature(t *testing.T) {
	token, err := SignJWT("secret-a", TokenClaims{Sub: "a", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret-b", token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("VerifyJWT() error = %v, want %v", err, ErrInvalidSignature)
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	token, err := SignJWT("secret", TokenClaims{Sub: "a", Exp: time.Now().Add(-time.Minute).Unix()})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("VerifyJWT() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestVerifyJWTMalformed(t *testing.T) {
	for _, token := range []string{"", "a.b", "a.b.c.d", "a.!!!.c"} {
		if _, err := VerifyJWT("secret", token); err == nil {
			t.Fatalf("VerifyJWT(%q) expected error", token)
		}
	}
}

func TestSignJWTRequiresSecret(t *testing.T) {
	if _, err := SignJWT("", TokenClaims{Sub: "a"}); err == nil {
		t.Fatalf("SignJWT() expected error for empty secret")
	}
}

func TestAuthJWT(t *testing.T) {
	secret := "s3cret"
	token, err := SignJWT(secret, TokenClaims{Sub: "aluno@example.com", Locale: "en", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	var gotUser, gotLocale string
	h := AuthJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotLocale = LocaleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/modules", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
	if gotUser != "aluno@example.com" || gotLocale != "en" {
		t.Fatalf("context user=%q locale=%q", gotUser, gotLocale)
	}
}
