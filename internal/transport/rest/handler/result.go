package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quizdesk/internal/model"
	"quizdesk/internal/service"
	"quizdesk/internal/transport/rest/middleware"
)

// ResultHandler handles attempt submission, result views, evaluation and
// publication endpoints
type ResultHandler struct {
	attemptSvc     *service.AttemptService
	evaluationSvc  *service.EvaluationService
	publicationSvc *service.PublicationService
}

// NewResultHandler creates a new result handler
func NewResultHandler(attemptSvc *service.AttemptService, evaluationSvc *service.EvaluationService, publicationSvc *service.PublicationService) *ResultHandler {
	return &ResultHandler{
		attemptSvc:     attemptSvc,
		evaluationSvc:  evaluationSvc,
		publicationSvc: publicationSvc,
	}
}

// SubmitAttemptRequest is the request body for submitting an attempt
type SubmitAttemptRequest struct {
	Responses []model.Response `json:"responses"`
	TimeTaken int              `json:"time_taken,omitempty"` // seconds
}

// EvaluateRequest is the request body for grading a result
type EvaluateRequest struct {
	Awards []model.Award `json:"evaluations"`
}

// SubmitAttempt handles POST /v1/quizzes/{quizId}/attempts
func (h *ResultHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]
	claims := middleware.GetClaims(r.Context())

	var req SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.attemptSvc.Submit(r.Context(), quizID, claims, req.Responses, req.TimeTaken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Get handles GET /v1/results/{resultId}
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	resultID := mux.Vars(r)["resultId"]
	claims := middleware.GetClaims(r.Context())

	result, err := h.attemptSvc.GetResult(r.Context(), resultID, claims)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListMine handles GET /v1/results — published results of the requester
func (h *ResultHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	results, err := h.attemptSvc.ListMine(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Leaderboard handles GET /v1/quizzes/{quizId}/leaderboard
func (h *ResultHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]

	entries, err := h.publicationSvc.Leaderboard(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ListAll handles GET /v1/admin/results
func (h *ResultHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.attemptSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// ListPending handles GET /v1/admin/results/pending
func (h *ResultHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	results, err := h.attemptSvc.ListPendingEvaluation(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Evaluate handles POST /v1/admin/results/{resultId}/evaluate
func (h *ResultHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	resultID := mux.Vars(r)["resultId"]
	claims := middleware.GetClaims(r.Context())

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.evaluationSvc.Evaluate(r.Context(), resultID, req.Awards, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Publish handles POST /v1/admin/results/{resultId}/publish
func (h *ResultHandler) Publish(w http.ResponseWriter, r *http.Request) {
	resultID := mux.Vars(r)["resultId"]

	result, err := h.publicationSvc.Publish(r.Context(), resultID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PublishAll handles POST /v1/admin/quizzes/{quizId}/publish
func (h *ResultHandler) PublishAll(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]

	count, err := h.publicationSvc.PublishAll(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"published": count})
}
