package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy/internal/domain"
)

func (a *App) DashboardModules(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"modules": a.Catalog.Modules,
		"support": a.Catalog.Support,
	})
}

func (a *App) Lesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := a.Catalog.Lesson(chi.URLParam(r, "slug"))
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load lesson")
		return
	}
	a.json(w, http.StatusOK, lesson)
}

func (a *App) Affiliate(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Catalog.Affiliate)
}

func (a *App) JanAI(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Catalog.JanAI)
}
