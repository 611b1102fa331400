package handlers

import (
	"net/http"
	"time"

	"academy/internal/domain/validation"
	"academy/internal/middleware"
)

const minPasswordChars = 6

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decode(w, r, &req) {
		return
	}

	c := validation.NewCollector()
	c.Email("email", req.Email, validation.MsgEmailInvalid)
	c.MinLength("password", req.Password, minPasswordChars, validation.MsgPasswordMin)
	if verrs, ok := asValidation(c.Err()); ok {
		a.invalid(w, r, verrs)
		return
	}

	if a.Verifier == nil || !a.Verifier.Verify(req.Email, req.Password) {
		a.Logger.Info().Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("login rejected")
		a.error(w, http.StatusUnauthorized, "invalid_credentials", a.message(r, validation.MsgInvalidLogin))
		return
	}

	now := a.clock()
	expires := now.Add(a.SessionTTL)
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      req.Email,
		Locale:   middleware.LocaleFromContext(r.Context()),
		IssuedAt: now.Unix(),
		Exp:      expires.Unix(),
		Issuer:   middleware.TokenIssuer,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, loginResponse{Token: token, TokenType: "Bearer", ExpiresAt: expires.UTC().Truncate(time.Second)})
}

// Me echoes the session subject, letting the dashboard check its token.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"email":  middleware.UserIDFromContext(r.Context()),
		"locale": middleware.LocaleFromContext(r.Context()),
	})
}
