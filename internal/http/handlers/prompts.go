package handlers

import (
	"errors"
	"net/http"

	"academy/internal/domain"
	"academy/internal/domain/validation"
	"academy/internal/domain/veo3"
	"academy/internal/middleware"
	"academy/internal/providers/guidance"
)

type promptResponse struct {
	GeneratedPrompt string `json:"generatedPrompt"`
}

type systemPromptRequest struct {
	Topic string `json:"topic"`
}

type systemPromptResponse struct {
	GeneratedSystemPrompt string `json:"generatedSystemPrompt"`
}

// PromptVeo3 compiles the full prompt-generator form.
func (a *App) PromptVeo3(w http.ResponseWriter, r *http.Request) {
	var req veo3.RawPromptRequest
	if !a.decode(w, r, &req) {
		return
	}
	a.compile(w, r, req)
}

// PromptVeo3Custom compiles the reduced form. Query parameters prefill any
// field the body leaves blank, which is how dashboard links seed the form.
func (a *App) PromptVeo3Custom(w http.ResponseWriter, r *http.Request) {
	var form veo3.CustomPromptForm
	if !a.decode(w, r, &form) {
		return
	}
	form = form.Merge(veo3.CustomPromptFormFromQuery(r.URL.Query()))
	a.compile(w, r, form.Raw())
}

func (a *App) compile(w http.ResponseWriter, r *http.Request, raw veo3.RawPromptRequest) {
	prompt, err := veo3.Generate(raw)
	if verrs, ok := asValidation(err); ok {
		a.invalid(w, r, verrs)
		return
	}
	if err != nil {
		detail := err.Error()
		var perr *domain.ProcessingError
		if errors.As(err, &perr) {
			detail = perr.Detail
		}
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("prompt compilation failed")
		a.error(w, http.StatusInternalServerError, "internal", a.message(r, validation.MsgInternalFailure, detail))
		return
	}
	a.json(w, http.StatusOK, promptResponse{GeneratedPrompt: prompt})
}

// PromptVeo3Options lists the form's choices, defaults and field hints.
func (a *App) PromptVeo3Options(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"videoTypes":      a.Catalog.PromptForm.VideoTypes,
		"hints":           a.Catalog.PromptForm.Hints,
		"yesNo":           []veo3.YesNo{veo3.Yes, veo3.No},
		"creativityLevel": []veo3.CreativityLevel{veo3.CreativityLow, veo3.CreativityMedium, veo3.CreativityHigh},
		"spokenLanguage":  []veo3.SpokenLanguage{veo3.SpokenHasSpeech, veo3.SpokenNoSpeech, veo3.SpokenSubtitlesOnly},
		"defaults": map[string]any{
			"hasSpecificAccent": veo3.No,
			"hasSceneDialogues": veo3.No,
			"visualStyle":       veo3.DefaultVisualStyle,
			"creativityLevel":   veo3.CreativityMedium,
			"spokenLanguage":    veo3.SpokenNoSpeech,
			"includeSubtitles":  false,
		},
	})
}

// PromptSystem asks the guidance generator for a reusable system prompt.
func (a *App) PromptSystem(w http.ResponseWriter, r *http.Request) {
	var req systemPromptRequest
	if !a.decode(w, r, &req) {
		return
	}
	text, err := a.Guidance.Generate(r.Context(), req.Topic)
	if err == nil {
		a.json(w, http.StatusOK, systemPromptResponse{GeneratedSystemPrompt: text})
		return
	}
	if verrs, ok := asValidation(err); ok {
		a.invalid(w, r, verrs)
		return
	}

	log := a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context()))
	var upstream *guidance.UpstreamError
	switch {
	case errors.As(err, &upstream):
		log.Int("upstream_status", upstream.StatusCode).Msg("system prompt: upstream error")
		a.error(w, http.StatusBadGateway, "upstream_error", a.message(r, validation.MsgUpstreamFailure, upstream.Detail))
	case errors.Is(err, guidance.ErrUnexpectedPayload):
		log.Msg("system prompt: unexpected payload")
		a.error(w, http.StatusBadGateway, "unexpected_payload", a.message(r, validation.MsgUnexpectedOutput))
	default:
		log.Msg("system prompt: communication failure")
		a.error(w, http.StatusBadGateway, "communication_error", a.message(r, validation.MsgCommunication))
	}
}
