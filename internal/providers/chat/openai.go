package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel   = openai.GPT3Dot5Turbo
	openAIDefaultTimeout = 20 * time.Second
	chatTemperature      = 0.7
)

type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Responder
	OnFallback func(reason string, err error)
}

// OpenAIResponder answers through the chat completions API.
type OpenAIResponder struct {
	client     *openai.Client
	model      string
	fallback   Responder
	onFallback func(reason string, err error)
}

func NewOpenAIResponder(opts OpenAIOptions) (*OpenAIResponder, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, errors.New("chat: openai api key is required")
	}
	config := openai.DefaultConfig(key)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		config.BaseURL = base
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: openAIDefaultTimeout}
	}
	config.HTTPClient = httpClient

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIResponder{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (o *OpenAIResponder) Answer(ctx context.Context, question string) (string, error) {
	if err := ValidateQuestion(question); err != nil {
		return "", err
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: chatTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantInstruction},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return useFallback(ctx, o.fallback, o.onFallback, question, openAIFailureReason(err), err)
	}
	if len(resp.Choices) == 0 {
		return useFallback(ctx, o.fallback, o.onFallback, question, "empty_response", nil)
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return useFallback(ctx, o.fallback, o.onFallback, question, "empty_response", nil)
	}
	return answer, nil
}

func openAIFailureReason(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
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

var _ Responder = (*OpenAIResponder)(nil)
