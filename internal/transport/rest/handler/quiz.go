package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quizdesk/internal/service"
	"quizdesk/internal/transport/rest/middleware"
)

// QuizHandler handles quiz catalog endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Create handles POST /v1/quizzes
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var def service.QuizDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.quizSvc.Create(r.Context(), def, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

// List handles GET /v1/quizzes
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.quizSvc.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// Get handles GET /v1/quizzes/{quizId} — the sanitized quiz-taking view
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]

	quiz, err := h.quizSvc.GetForTaking(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

// Delete handles DELETE /v1/quizzes/{quizId} — soft delete
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]

	if err := h.quizSvc.Deactivate(r.Context(), quizID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
