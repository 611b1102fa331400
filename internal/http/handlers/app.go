package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"academy/internal/catalog"
	"academy/internal/domain/validation"
	"academy/internal/infra"
	"academy/internal/infra/credentials"
	"academy/internal/middleware"
	"academy/internal/providers/chat"
	"academy/internal/providers/guidance"
)

const maxBodyBytes = 1 << 20

type App struct {
	Logger     *infra.Logger
	Verifier   credentials.Verifier
	Guidance   guidance.Generator
	Assistant  chat.Responder
	Catalog    *catalog.Catalog
	JWTSecret  string
	SessionTTL time.Duration

	now func() time.Time
}

func NewApp(logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Logger: logger, SessionTTL: 24 * time.Hour, now: time.Now}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// invalid answers 422 with every field violation, rendered in the request locale.
func (a *App) invalid(w http.ResponseWriter, r *http.Request, verrs validation.Errors) {
	tag := middleware.LanguageFromContext(r.Context())
	a.json(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs.Localize(tag)})
}

// asValidation reports whether err carries field violations.
func asValidation(err error) (validation.Errors, bool) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "payload too large")
			return false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *App) message(r *http.Request, key string, args ...any) string {
	return validation.Sprintf(middleware.LanguageFromContext(r.Context()), key, args...)
}
