package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"beetacademy/internal/model"
	"beetacademy/internal/repository"
	"beetacademy/internal/service"
)

// EvaluationHandler receives results from the external evaluator.
type EvaluationHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(feedbackSvc *service.FeedbackService) *EvaluationHandler {
	return &EvaluationHandler{feedbackSvc: feedbackSvc}
}

// CompleteEvaluationRequest is the webhook body. Feedback is the raw
// double-encoded envelope; it is stored verbatim and parsed on read.
type CompleteEvaluationRequest struct {
	Status   model.SubmissionStatus `json:"status"`
	Feedback string                 `json:"feedback"`
}

// Complete handles POST /v1/internal/evaluations/{id}
func (h *EvaluationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CompleteEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.feedbackSvc.CompleteEvaluation(r.Context(), id, req.Status, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrAlreadyEvaluated):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
