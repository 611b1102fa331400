// Package chat answers the short questions students type into the dashboard
// chatbot.
package chat

import (
	"context"
	"fmt"
	"strings"

	"academy/internal/domain/validation"
	"academy/internal/infra"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	FieldQuestion = "question"
)

// Responder answers one question.
type Responder interface {
	Answer(ctx context.Context, question string) (string, error)
}

// ValidateQuestion rejects blank questions.
func ValidateQuestion(question string) error {
	c := validation.NewCollector()
	c.Required(FieldQuestion, question, validation.MsgQuestionRequired)
	return c.Err()
}

type reply struct {
	cues   []string
	answer string
}

// replies are checked in order; the first rule with a matching cue wins.
var replies = []reply{
	{cues: []string{"olá", "oi"}, answer: "Olá! Como posso te ajudar hoje (de forma simples)?"},
	{cues: []string{"como você está"}, answer: "Estou funcionando, obrigado por perguntar! E você?"},
	{cues: []string{"adeus", "tchau"}, answer: "Até logo! Volte sempre."},
	{cues: []string{"obrigado", "obrigada"}, answer: "De nada! 😊"},
}

// LocalResponder is the offline keyword bot. Cues match anywhere in the
// lower-cased question, so "oi" also fires inside words such as "noite".
type LocalResponder struct{}

func NewLocalResponder() *LocalResponder {
	return &LocalResponder{}
}

func (LocalResponder) Answer(_ context.Context, question string) (string, error) {
	if err := ValidateQuestion(question); err != nil {
		return "", err
	}
	lowered := cases.Lower(language.Und).String(question)
	for _, r := range replies {
		for _, cue := range r.cues {
			if strings.Contains(lowered, cue) {
				return r.answer, nil
			}
		}
	}
	return "Você perguntou: \"" + question + "\". \n\nEu sou um bot de demonstração e minhas respostas são limitadas por enquanto!", nil
}

// Options selects and configures the responder. Remote providers without a
// key degrade to the local bot.
type Options struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	Logger        *infra.Logger
}

// New builds the configured responder. Every remote responder falls back to
// the local bot and logs why.
func New(ctx context.Context, opts Options) (Responder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	local := NewLocalResponder()
	onFallback := func(provider string) func(string, error) {
		return func(reason string, err error) {
			logger.Warn().Err(err).Str("provider", provider).Str("reason", reason).Msg("chat: falling back to local responder")
		}
	}

	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderLocal:
		return local, nil
	case ProviderOpenAI:
		if strings.TrimSpace(opts.OpenAIAPIKey) == "" {
			logger.Warn().Msg("chat: OPENAI_API_KEY not set, using local responder")
			return local, nil
		}
		r, err := NewOpenAIResponder(OpenAIOptions{
			APIKey:     opts.OpenAIAPIKey,
			Model:      opts.OpenAIModel,
			BaseURL:    opts.OpenAIBaseURL,
			Fallback:   local,
			OnFallback: onFallback(ProviderOpenAI),
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	case ProviderGemini:
		if strings.TrimSpace(opts.GeminiAPIKey) == "" {
			logger.Warn().Msg("chat: GOOGLE_API_KEY not set, using local responder")
			return local, nil
		}
		r, err := NewGeminiResponder(ctx, GeminiOptions{
			APIKey:     opts.GeminiAPIKey,
			Model:      opts.GeminiModel,
			BaseURL:    opts.GeminiBaseURL,
			Fallback:   local,
			OnFallback: onFallback(ProviderGemini),
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("chat: unknown provider %q", opts.Provider)
	}
}

// useFallback hands question to fallback after reporting reason. Without a
// fallback the original error is returned.
func useFallback(ctx context.Context, fallback Responder, onFallback func(string, error), question, reason string, err error) (string, error) {
	if onFallback != nil {
		onFallback(reason, err)
	}
	if fallback == nil {
		if err == nil {
			err = fmt.Errorf("chat: %s", reason)
		}
		return "", err
	}
	return fallback.Answer(ctx, question)
}

const assistantInstruction = "Você é um assistente de IA amigável e prestativo. Responda à pergunta do usuário de forma concisa e útil."

var _ Responder = (*LocalResponder)(nil)
