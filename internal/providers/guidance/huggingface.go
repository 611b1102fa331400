package guidance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"academy/internal/domain/validation"
	"academy/internal/infra"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "mistralai/Mistral-7B-Instruct-v0.1"

	defaultTimeout       = 60 * time.Second
	defaultRetryInterval = 2 * time.Second
)

// Options configures the Hugging Face Inference API client.
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	// MaxRetries re-sends the request when the host answers 429 or 503
	// (model loading). Zero, the default, sends exactly one request.
	MaxRetries    int
	RetryInterval time.Duration
	OnFallback    func(reason string, err error)
}

// HuggingFace generates system prompts through the hosted inference API. With
// no API key it never touches the network and serves FallbackPrompt instead.
type HuggingFace struct {
	apiKey     string
	endpoint   string
	model      string
	timeout    time.Duration
	maxRetries int
	retryEvery time.Duration
	httpClient *http.Client
	logger     *infra.Logger
	onFallback func(reason string, err error)
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	ReturnFullText    bool    `json:"return_full_text"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

type inferenceError struct {
	Error json.RawMessage `json:"error"`
}

// NewHuggingFace builds the client. The request timeout bounds every call
// even when the caller's context has no deadline.
func NewHuggingFace(opts Options) *HuggingFace {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.Trim(strings.TrimSpace(opts.Model), "/")
	if model == "" {
		model = DefaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	retryEvery := opts.RetryInterval
	if retryEvery <= 0 {
		retryEvery = defaultRetryInterval
	}
	return &HuggingFace{
		apiKey:     strings.TrimSpace(opts.APIKey),
		endpoint:   baseURL + "/" + model,
		model:      model,
		timeout:    timeout,
		maxRetries: max(opts.MaxRetries, 0),
		retryEvery: retryEvery,
		httpClient: httpClient,
		logger:     logger,
		onFallback: opts.OnFallback,
	}
}

// Enabled reports whether a credential is configured.
func (h *HuggingFace) Enabled() bool {
	return h.apiKey != ""
}

// Model returns the hosted model identifier.
func (h *HuggingFace) Model() string {
	return h.model
}

// Generate validates topic and returns the generated system prompt.
func (h *HuggingFace) Generate(ctx context.Context, topic string) (string, error) {
	if err := ValidateTopic(topic); err != nil {
		return "", err
	}
	if !h.Enabled() {
		if h.onFallback != nil {
			h.onFallback("missing_api_key", nil)
		}
		return FallbackPrompt(topic), nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	body, err := json.Marshal(inferenceRequest{
		Inputs: MetaPrompt(topic),
		Parameters: inferenceParameters{
			MaxNewTokens:      512,
			Temperature:       0.7,
			TopP:              0.9,
			RepetitionPenalty: 1.1,
			ReturnFullText:    false,
		},
		Options: inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("guidance: encode request: %w", err)
	}

	var (
		text    string
		lastErr error
	)
	attempt := func() error {
		text, lastErr = h.call(ctx, body)
		var upstream *UpstreamError
		if errors.As(lastErr, &upstream) && upstream.Temporary() {
			return lastErr
		}
		if lastErr != nil {
			return backoff.Permanent(lastErr)
		}
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(h.retryEvery)), uint64(h.maxRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		h.logger.Info().Err(err).Dur("wait", wait).Str("model", h.model).Msg("guidance: retrying")
	}
	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		if lastErr != nil {
			return "", lastErr
		}
		return "", err
	}
	h.logger.Debug().
		Str("model", h.model).
		Int("chars", validation.Length(text)).
		Msg("guidance: generated system prompt")
	return text, nil
}

// call performs a single inference request.
func (h *HuggingFace) call(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrCommunication, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCommunication, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrCommunication, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(raw)
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		h.logger.Warn().
			Int("status", resp.StatusCode).
			Str("model", h.model).
			Str("detail", detail).
			Msg("guidance: upstream error")
		return "", &UpstreamError{StatusCode: resp.StatusCode, Detail: detail}
	}

	text, err := extractGenerated(raw, resp.StatusCode)
	if err != nil {
		h.logger.Warn().Err(err).Str("model", h.model).Msg("guidance: unusable response")
		return "", err
	}
	return text, nil
}

func extractGenerated(raw []byte, status int) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []generatedText
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		if len(results) > 0 && results[0].GeneratedText != "" {
			return validation.TrimForm(results[0].GeneratedText), nil
		}
		return "", ErrUnexpectedPayload
	}
	if detail := errorDetail(trimmed); detail != "" {
		return "", &UpstreamError{StatusCode: status, Detail: detail}
	}
	return "", ErrUnexpectedPayload
}

// errorDetail reads the "error" member of an inference API payload. The API
// sends either a string or a list of strings.
func errorDetail(raw []byte) string {
	var payload inferenceError
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Error) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(payload.Error, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var many []string
	if err := json.Unmarshal(payload.Error, &many); err == nil {
		return strings.TrimSpace(strings.Join(many, "; "))
	}
	return strings.TrimSpace(string(payload.Error))
}

var _ Generator = (*HuggingFace)(nil)
