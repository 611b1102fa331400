package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"academy/internal/catalog"
	"academy/internal/http/handlers"
	httpapi "academy/internal/http/httpapi"
	"academy/internal/infra"
	"academy/internal/infra/credentials"
	"academy/internal/infra/geoip"
	"academy/internal/providers/chat"
	"academy/internal/providers/guidance"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	content, err := catalog.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer geo.Close()

	gen := guidance.NewHuggingFace(guidance.Options{
		APIKey:         cfg.HFAPIKey,
		BaseURL:        cfg.HFBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.GuidanceTimeout,
		MaxRetries:     cfg.GuidanceRetries,
		OnFallback: func(reason string, err error) {
			logger.Warn().Err(err).Str("reason", reason).Msg("guidance: serving fallback instruction")
		},
	})
	if !gen.Enabled() {
		logger.Warn().Msg("HUGGING_FACE_API_KEY not set, system prompts use the fallback text")
	}

	assistant, err := chat.New(ctx, chat.Options{
		Provider:      cfg.ChatProvider,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GoogleAPIKey,
		GeminiModel:   cfg.GeminiModel,
		Logger:        &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure chat assistant")
	}

	app := handlers.NewApp(&logger)
	app.Verifier = credentials.NewStaticVerifier(cfg.LoginEmail, cfg.LoginPassword)
	app.Guidance = gen
	app.Assistant = assistant
	app.Catalog = content
	app.JWTSecret = cfg.JWTSecret
	app.SessionTTL = cfg.SessionTTL

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          &logger,
		CORSOrigins:     cfg.CORSOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   geo.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("chat_provider", cfg.ChatProvider).
			Bool("guidance_enabled", gen.Enabled()).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	// in-flight system prompt requests may take up to the guidance timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GuidanceTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
