package httpapi

import (
	"net/http"
	"time"

	"academy/internal/http/handlers"
	"academy/internal/infra"
	appmw "academy/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options carries the cross-cutting settings of the HTTP surface.
type Options struct {
	Logger          *infra.Logger
	CORSOrigins     []string
	DefaultLocale   string
	CountryLookup   appmw.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		appmw.RequestID,
		middleware.Recoverer,
		appmw.CORS(opts.CORSOrigins),
		appmw.I18N(opts.DefaultLocale, opts.CountryLookup),
		appmw.Logger(*logger),
	)

	// login and system prompt requests are counted separately
	loginLimit := appmw.RateLimit(opts.RateLimitPerMin, time.Minute)
	systemLimit := appmw.RateLimit(opts.RateLimitPerMin, time.Minute)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.With(loginLimit).Post("/auth/login", app.Login)

		r.Group(func(r chi.Router) {
			r.Use(appmw.AuthJWT(app.JWTSecret))

			r.Get("/me", app.Me)
			r.Get("/dashboard/modules", app.DashboardModules)
			r.Get("/lessons/{slug}", app.Lesson)
			r.Get("/affiliate", app.Affiliate)
			r.Get("/tools/jan-ai", app.JanAI)

			r.Route("/prompts", func(r chi.Router) {
				r.Get("/veo3/options", app.PromptVeo3Options)
				r.Post("/veo3", app.PromptVeo3)
				r.Post("/veo3/custom", app.PromptVeo3Custom)
				r.With(systemLimit).Post("/system", app.PromptSystem)
			})

			r.Post("/chat", app.Chat)
		})
	})

	return r
}
