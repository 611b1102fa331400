package infra

import "testing"

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("CHAT_PROVIDER", "")
	t.Setenv("HF_API_KEY", "")
	t.Setenv("HUGGING_FACE_API_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.ChatProvider != "local" {
		t.Fatalf("ChatProvider mismatch: got %q want %q", cfg.ChatProvider, "local")
	}
	if cfg.DefaultLocale != "pt" {
		t.Fatalf("DefaultLocale mismatch: got %q want %q", cfg.DefaultLocale, "pt")
	}
	if cfg.GuidanceEnabled() {
		t.Fatalf("GuidanceEnabled() = true without a Hugging Face key")
	}
	if cfg.GuidanceTimeout.Seconds() != 60 {
		t.Fatalf("GuidanceTimeout mismatch: got %s", cfg.GuidanceTimeout)
	}
}

func TestLoadConfigHonorsLegacyHuggingFaceKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HF_API_KEY", "")
	t.Setenv("HUGGING_FACE_API_KEY", "hf_legacy")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HFAPIKey != "hf_legacy" {
		t.Fatalf("HFAPIKey mismatch: got %q want %q", cfg.HFAPIKey, "hf_legacy")
	}
	if !cfg.GuidanceEnabled() {
		t.Fatalf("GuidanceEnabled() = false with a key configured")
	}
}

func TestLoadConfigRejectsUnknownChatProvider(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CHAT_PROVIDER", "anthropic")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig expected error for unknown chat provider")
	}
}

func TestLoadConfigSplitsCORSOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://academy.example.com , ,http://localhost:3000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://academy.example.com", "http://localhost:3000"}
	if len(cfg.CORSOrigins) != len(expected) {
		t.Fatalf("CORSOrigins mismatch: got %#v want %#v", cfg.CORSOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSOrigins[i] != origin {
			t.Fatalf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], origin)
		}
	}
}

func TestLoadToolConfigSkipsServerSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CHAT_PROVIDER", "")
	t.Setenv("GUIDANCE_MAX_RETRIES", "")

	cfg, err := LoadToolConfig()
	if err != nil {
		t.Fatalf("LoadToolConfig returned error: %v", err)
	}
	if cfg.GuidanceRetries != 0 {
		t.Fatalf("GuidanceRetries mismatch: got %d want 0", cfg.GuidanceRetries)
	}
}
