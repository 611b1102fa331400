package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel   = "gemini-1.5-flash"
	geminiDefaultTimeout = 20 * time.Second
)

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Responder
	OnFallback func(reason string, err error)
}

// GeminiResponder answers through the Gemini API.
type GeminiResponder struct {
	client     *genai.Client
	model      string
	fallback   Responder
	onFallback func(reason string, err error)
}

func NewGeminiResponder(ctx context.Context, opts GeminiOptions) (*GeminiResponder, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, errors.New("chat: gemini api key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: geminiDefaultTimeout}
	}
	cfg := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiResponder{
		client:     client,
		model:      model,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (g *GeminiResponder) Answer(ctx context.Context, question string) (string, error) {
	if err := ValidateQuestion(question); err != nil {
		return "", err
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](chatTemperature),
	})
	if err != nil {
		return useFallback(ctx, g.fallback, g.onFallback, question, geminiFailureReason(err), err)
	}
	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return useFallback(ctx, g.fallback, g.onFallback, question, "empty_response", nil)
	}
	return answer, nil
}

func geminiFailureReason(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "invalid_api_key"
		case http.StatusTooManyRequests:
			return "quota_exceeded"
		}
		return "api_error"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "request_failed"
}

var _ Responder = (*GeminiResponder)(nil)
