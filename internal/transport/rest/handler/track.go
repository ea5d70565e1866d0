package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"beetacademy/internal/service"
	"beetacademy/internal/track"
	"beetacademy/internal/transport/rest/middleware"
)

// TrackHandler handles track catalog, gating, checklist, and quiz endpoints
type TrackHandler struct {
	progressSvc *service.ProgressService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(progressSvc *service.ProgressService) *TrackHandler {
	return &TrackHandler{progressSvc: progressSvc}
}

// List handles GET /v1/tracks
func (h *TrackHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tracks": track.All()})
}

// Get handles GET /v1/tracks/{trackId}. The optional "path" query parameter is
// the route the trainee is on, used to mark the current module.
func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["trackId"]
	traineeID := middleware.GetTraineeID(r.Context())

	def, gates, err := h.progressSvc.Gates(r.Context(), traineeID, trackID, r.URL.Query().Get("path"))
	if err != nil {
		writeTrackError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"track": def,
		"gates": gates,
	})
}

// CompleteModule handles POST /v1/tracks/{trackId}/modules/{index}/complete
func (h *TrackHandler) CompleteModule(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	if err := h.progressSvc.CompleteModule(r.Context(), traineeID, trackID, index); err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": true})
}

// Reset handles POST /v1/tracks/{trackId}/reset
func (h *TrackHandler) Reset(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["trackId"]
	traineeID := middleware.GetTraineeID(r.Context())

	if err := h.progressSvc.ResetTrack(r.Context(), traineeID, trackID); err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// GetChecklist handles GET /v1/tracks/{trackId}/modules/{index}/checklist
func (h *TrackHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	state, err := h.progressSvc.Checklist(r.Context(), traineeID, trackID, index)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateChecklistRequest is the request body for replacing checked items.
type UpdateChecklistRequest struct {
	Checked []string `json:"checked"`
}

// UpdateChecklist handles PUT /v1/tracks/{trackId}/modules/{index}/checklist
func (h *TrackHandler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	var req UpdateChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.progressSvc.UpdateChecklist(r.Context(), traineeID, trackID, index, req.Checked)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// CheckAll handles POST /v1/tracks/{trackId}/modules/{index}/checklist/check-all
func (h *TrackHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	state, err := h.progressSvc.CheckAll(r.Context(), traineeID, trackID, index)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetQuiz handles GET /v1/tracks/{trackId}/modules/{index}/quiz
func (h *TrackHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	state, err := h.progressSvc.Quiz(r.Context(), traineeID, trackID, index)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitQuiz handles POST /v1/tracks/{trackId}/modules/{index}/quiz/evaluate
func (h *TrackHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	trackID, index, ok := moduleVars(w, r)
	if !ok {
		return
	}
	traineeID := middleware.GetTraineeID(r.Context())

	var answer service.QuizAnswer
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.progressSvc.SubmitQuiz(r.Context(), traineeID, trackID, index, answer)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": json.RawMessage(result)})
}

func moduleVars(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 1 {
		writeError(w, http.StatusBadRequest, "invalid module index")
		return "", 0, false
	}
	return vars["trackId"], index, true
}

func writeTrackError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTrackNotFound),
		errors.Is(err, service.ErrModuleNotFound),
		errors.Is(err, service.ErrNoChecklist),
		errors.Is(err, service.ErrNoQuiz):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrModuleLocked),
		errors.Is(err, service.ErrChecklistIncomplete),
		errors.Is(err, service.ErrQuizNotAttempted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrQuizAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCheckAllNotReady):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
