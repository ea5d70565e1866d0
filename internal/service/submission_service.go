package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/repository"
	"beetacademy/internal/storage"
)

const (
	// MaxAttachments is the most files a single submission may carry.
	MaxAttachments = 5
	// MaxAttachmentSize is the per-file size cap in bytes.
	MaxAttachmentSize = 10 << 20
)

// ValidationError is a pre-network rejection of a submission. These never
// reach storage or the database.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a submission validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UploadError means an attachment failed to reach blob storage. The whole
// submission is aborted; no record exists for it.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// FileUpload is one attachment in a submission request.
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// SubmitRequest carries a new prompt submission.
type SubmitRequest struct {
	TraineeID      string
	SubmitterName  string
	SubmitterEmail string
	PromptText     string
	Attachments    []FileUpload
}

// SubmissionService accepts prompt submissions: it validates, uploads
// attachments, then creates the pending record. Uploads are all-or-nothing:
// a record must never reference attachments that were not stored.
type SubmissionService struct {
	repo        repository.SubmissionRepo
	attachments storage.AttachmentStore
	log         *logger.Logger
	now         func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(repo repository.SubmissionRepo, attachments storage.AttachmentStore, log *logger.Logger) *SubmissionService {
	return &SubmissionService{
		repo:        repo,
		attachments: attachments,
		log:         log.With("service", "SubmissionService"),
		now:         time.Now,
	}
}

func validate(req *SubmitRequest) error {
	if strings.TrimSpace(req.SubmitterName) == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(req.PromptText) == "" {
		return &ValidationError{Msg: "prompt text is required"}
	}
	if len(req.Attachments) > MaxAttachments {
		return &ValidationError{Msg: fmt.Sprintf("at most %d attachments allowed", MaxAttachments)}
	}
	for _, f := range req.Attachments {
		if f.Size > MaxAttachmentSize {
			return &ValidationError{Msg: fmt.Sprintf("attachment %q exceeds the 10 MB limit", f.Name)}
		}
	}
	return nil
}

// Submit validates the request, uploads all attachments, then inserts exactly
// one pending record. Any upload failure aborts before the record exists.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmitRequest) (*model.PromptSubmission, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(req.Attachments))
	for _, f := range req.Attachments {
		key := storage.BuildKey(s.now(), f.Name)
		url, err := s.attachments.Upload(ctx, key, f.Content)
		if err != nil {
			s.log.Error("attachment upload failed, aborting submission",
				"trainee", req.TraineeID, "file", f.Name, "error", err)
			return nil, &UploadError{FileName: f.Name, Err: err}
		}
		urls = append(urls, url)
	}

	sub := &model.PromptSubmission{
		TraineeID:      req.TraineeID,
		SubmitterName:  strings.TrimSpace(req.SubmitterName),
		SubmitterEmail: strings.TrimSpace(req.SubmitterEmail),
		PromptText:     strings.TrimSpace(req.PromptText),
		SubmissionType: "prompt",
		AttachmentURLs: urls,
		Status:         model.SubmissionPending,
	}
	if _, err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission record: %w", err)
	}

	s.log.Info("submission created",
		"id", sub.ID, "trainee", req.TraineeID, "attachments", len(urls))
	return sub, nil
}

// Get returns a submission if it exists and belongs to the trainee.
func (s *SubmissionService) Get(ctx context.Context, traineeID, id string) (*model.PromptSubmission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.TraineeID != traineeID {
		return nil, nil
	}
	return sub, nil
}

// List returns the trainee's submissions, newest first.
func (s *SubmissionService) List(ctx context.Context, traineeID string) ([]*model.PromptSubmission, error) {
	return s.repo.GetByTraineeID(ctx, traineeID)
}
