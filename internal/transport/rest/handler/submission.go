package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"beetacademy/internal/model"
	"beetacademy/internal/service"
	"beetacademy/internal/transport/rest/middleware"
)

// maxSubmissionBody caps the whole multipart form: 5 files of 10 MB plus slack
// for text fields.
const maxSubmissionBody = 52 << 20

// SubmissionHandler handles prompt submission endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
	feedbackSvc   *service.FeedbackService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService, feedbackSvc *service.FeedbackService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		feedbackSvc:   feedbackSvc,
	}
}

// Create handles POST /v1/submissions (multipart form: name, email, promptText,
// attachments).
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	traineeID := middleware.GetTraineeID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBody)
	if err := r.ParseMultipartForm(maxSubmissionBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := &service.SubmitRequest{
		TraineeID:      traineeID,
		SubmitterName:  r.FormValue("name"),
		SubmitterEmail: r.FormValue("email"),
		PromptText:     r.FormValue("promptText"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["attachments"] {
			file, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable attachment: "+header.Filename)
				return
			}
			defer file.Close()
			req.Attachments = append(req.Attachments, service.FileUpload{
				Name:    header.Filename,
				Size:    header.Size,
				Content: file,
			})
		}
	}

	sub, err := h.submissionSvc.Submit(r.Context(), req)
	if err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var ue *service.UploadError
		if errors.As(err, &ue) {
			writeError(w, http.StatusBadGateway, "there was an error submitting, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "there was an error submitting, please try again")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /v1/submissions
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	traineeID := middleware.GetTraineeID(r.Context())

	subs, err := h.submissionSvc.List(r.Context(), traineeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// Get handles GET /v1/submissions/{id}
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.ownedSubmission(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// GetFeedback handles GET /v1/submissions/{id}/feedback
func (h *SubmissionHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.ownedSubmission(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.feedbackSvc.View(sub))
}

func (h *SubmissionHandler) ownedSubmission(w http.ResponseWriter, r *http.Request) (*model.PromptSubmission, bool) {
	id := mux.Vars(r)["id"]
	traineeID := middleware.GetTraineeID(r.Context())

	sub, err := h.submissionSvc.Get(r.Context(), traineeID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return nil, false
	}
	return sub, true
}
