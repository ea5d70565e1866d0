package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"beetacademy/internal/feedback"
	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/repository"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// FeedbackService applies evaluator results to submissions and renders the
// parsed feedback view.
type FeedbackService struct {
	repo        repository.SubmissionRepo
	parser      *feedback.Parser
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo repository.SubmissionRepo, parser *feedback.Parser, log *logger.Logger) *FeedbackService {
	return &FeedbackService{
		repo:   repo,
		parser: parser,
		log:    log.With("service", "FeedbackService"),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CompleteEvaluation records the evaluator's verdict for a submission and
// notifies watchers. A submission is written exactly once; repeat deliveries
// are rejected.
func (s *FeedbackService) CompleteEvaluation(ctx context.Context, id string, status model.SubmissionStatus, raw string) (*model.PromptSubmission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	if status == "" {
		status = model.SubmissionCompleted
	}
	if err := s.repo.SetEvaluation(ctx, id, status, raw); err != nil {
		return nil, err
	}

	now := time.Now()
	sub.Status = status
	sub.Feedback = &raw
	sub.EvaluatedAt = &now

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSubmission(id, "feedback_update", map[string]interface{}{
			"submissionId": id,
			"status":       status,
			"feedback":     raw,
		})
	}
	s.log.Info("evaluation recorded", "id", id, "status", status)
	return sub, nil
}

// CategoryView is one parsed category enriched with display metadata.
type CategoryView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	model.CategoryResult
	Weight int `json:"weight"`
}

// FeedbackView is the structured viewer payload for a submission's feedback.
// Fallback means the envelope could not be parsed and Raw should be shown
// as-is.
type FeedbackView struct {
	Status     model.SubmissionStatus `json:"status"`
	Categories []CategoryView         `json:"categories,omitempty"`
	Summary    model.FeedbackSummary  `json:"summary"`
	Fallback   bool                   `json:"fallback"`
	Raw        string                 `json:"raw,omitempty"`
}

// View renders a submission's feedback. While the submission is pending the
// view is empty; a malformed envelope degrades to raw-text display instead of
// failing.
func (s *FeedbackService) View(sub *model.PromptSubmission) *FeedbackView {
	view := &FeedbackView{Status: sub.Status}
	if sub.Status == model.SubmissionPending || sub.Feedback == nil {
		return view
	}

	results, err := s.parser.Parse(*sub.Feedback)
	if err != nil {
		view.Fallback = true
		view.Raw = *sub.Feedback
		return view
	}

	for _, key := range feedback.CategoryOrder {
		result, ok := results[key]
		if !ok {
			continue
		}
		cfg := feedback.Categories[key]
		view.Categories = append(view.Categories, CategoryView{
			Key:            key,
			Label:          cfg.Label,
			Description:    cfg.Description,
			CategoryResult: result,
			Weight:         feedback.ExtremityWeight(result.Extremity),
		})
	}
	sort.SliceStable(view.Categories, func(i, j int) bool {
		return view.Categories[i].Weight > view.Categories[j].Weight
	})
	view.Summary = feedback.CountErrors(results)
	return view
}
