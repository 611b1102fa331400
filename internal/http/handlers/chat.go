package handlers

import (
	"net/http"

	"academy/internal/middleware"
)

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (a *App) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !a.decode(w, r, &req) {
		return
	}
	answer, err := a.Assistant.Answer(r.Context(), req.Question)
	if verrs, ok := asValidation(err); ok {
		a.invalid(w, r, verrs)
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("chat answer failed")
		a.error(w, http.StatusBadGateway, "chat_failed", "the assistant could not answer right now")
		return
	}
	a.json(w, http.StatusOK, chatResponse{Answer: answer})
}
