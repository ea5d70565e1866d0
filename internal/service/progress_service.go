package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beetacademy/internal/gate"
	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/progress"
	"beetacademy/internal/quiz"
	"beetacademy/internal/track"
)

var (
	ErrTrackNotFound        = errors.New("track not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrModuleLocked         = errors.New("module is locked")
	ErrNoChecklist          = errors.New("module has no checklist")
	ErrNoQuiz               = errors.New("module has no quiz")
	ErrChecklistIncomplete  = errors.New("checklist is not complete")
	ErrQuizNotAttempted     = errors.New("quiz has not been submitted")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrCheckAllNotReady     = errors.New("check-all is not available yet")
)

// checkAllDelay gates the "check everything" convenience action to trainees
// who have actually spent time on the checklist module.
const checkAllDelay = 10 * time.Minute

// ProgressService drives module completion, track reset, checklist state, and
// quiz submission over the injected progress store.
type ProgressService struct {
	store progress.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(store progress.Store, log *logger.Logger) *ProgressService {
	return &ProgressService{
		store: store,
		log:   log.With("service", "ProgressService"),
		now:   time.Now,
	}
}

// lookup adapts the store into a gate.FlagLookup. Storage errors resolve to
// "not completed" so a broken read locks rather than unlocks.
func (s *ProgressService) lookup(ctx context.Context, traineeID, trackID string) gate.FlagLookup {
	return func(moduleIndex int) bool {
		done, err := s.store.Get(ctx, traineeID, progress.ModuleFlagKey(trackID, moduleIndex))
		if err != nil {
			s.log.Warn("flag read failed, treating as incomplete",
				"trainee", traineeID, "track", trackID, "module", moduleIndex, "error", err)
			return false
		}
		return done
	}
}

// Gates evaluates the track's gate decisions for a trainee.
func (s *ProgressService) Gates(ctx context.Context, traineeID, trackID, currentPath string) (model.TrackDefinition, []model.GateDecision, error) {
	t, ok := track.Get(trackID)
	if !ok {
		return model.TrackDefinition{}, nil, ErrTrackNotFound
	}
	return t, gate.Evaluate(t, s.lookup(ctx, traineeID, trackID), currentPath), nil
}

// CompleteModule sets a module's completion flag. The module must be unlocked,
// and its completion condition (checklist satisfied, quiz submitted) must
// hold: flags are never set from navigation alone.
func (s *ProgressService) CompleteModule(ctx context.Context, traineeID, trackID string, index int) error {
	t, ok := track.Get(trackID)
	if !ok {
		return ErrTrackNotFound
	}
	m := t.Module(index)
	if m == nil {
		return ErrModuleNotFound
	}

	decisions := gate.Evaluate(t, s.lookup(ctx, traineeID, trackID), "")
	for _, d := range decisions {
		if d.ModuleIndex == index && d.IsLocked {
			return fmt.Errorf("%w: %s", ErrModuleLocked, d.LockReason)
		}
	}

	if m.Checklist != nil {
		checked, err := s.checkedItems(ctx, traineeID, trackID, index)
		if err != nil {
			return err
		}
		if !quiz.IsChecklistComplete(m.Checklist, checked) {
			return ErrChecklistIncomplete
		}
	}
	if m.Quiz != nil {
		attempted, err := s.store.Get(ctx, traineeID, progress.FeatureFlagKey(trackID, m.Quiz.Key))
		if err != nil {
			return err
		}
		if !attempted {
			return ErrQuizNotAttempted
		}
	}

	return s.store.Set(ctx, traineeID, progress.ModuleFlagKey(trackID, index))
}

// ResetTrack removes every flag the track can ever write. The key set is
// derived from the track definition, so reset stays exhaustive as modules are
// added.
func (s *ProgressService) ResetTrack(ctx context.Context, traineeID, trackID string) error {
	t, ok := track.Get(trackID)
	if !ok {
		return ErrTrackNotFound
	}
	s.log.Info("resetting track progress", "trainee", traineeID, "track", trackID)
	return s.store.ResetAll(ctx, traineeID, progress.ResetKeys(t))
}

// GroupStatus reports one checklist section's satisfaction.
type GroupStatus struct {
	GroupID   string `json:"groupId"`
	Satisfied bool   `json:"satisfied"`
}

// ChecklistState is the current checklist view for one module.
type ChecklistState struct {
	Definition      *model.ChecklistDefinition `json:"definition"`
	Checked         []string                   `json:"checked"`
	Groups          []GroupStatus              `json:"groups"`
	Complete        bool                       `json:"complete"`
	CheckAllEnabled bool                       `json:"checkAllEnabled"`
}

// Checklist returns the checklist state for a module and records the first
// visit timestamp if this is the trainee's first look.
func (s *ProgressService) Checklist(ctx context.Context, traineeID, trackID string, index int) (*ChecklistState, error) {
	m, err := s.checklistModule(trackID, index)
	if err != nil {
		return nil, err
	}

	firstVisit := s.now().UTC().Format(time.RFC3339)
	if _, err := s.store.SetValueIfAbsent(ctx, traineeID, progress.FirstVisitKey(trackID, index), firstVisit); err != nil {
		return nil, err
	}

	return s.checklistState(ctx, traineeID, trackID, index, m)
}

// UpdateChecklist replaces the checked item set for a module's checklist.
// Unknown item ids are dropped.
func (s *ProgressService) UpdateChecklist(ctx context.Context, traineeID, trackID string, index int, checkedIDs []string) (*ChecklistState, error) {
	m, err := s.checklistModule(trackID, index)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, g := range m.Checklist.Groups {
		for _, item := range g.Items {
			known[item.ID] = true
		}
	}
	kept := make([]string, 0, len(checkedIDs))
	for _, id := range checkedIDs {
		if known[id] {
			kept = append(kept, id)
		}
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetValue(ctx, traineeID, progress.ChecklistKey(trackID, index), string(data)); err != nil {
		return nil, err
	}
	return s.checklistState(ctx, traineeID, trackID, index, m)
}

// CheckAll marks every checklist item checked. Only available once the
// check-all delay has elapsed since the trainee's first visit to the module.
func (s *ProgressService) CheckAll(ctx context.Context, traineeID, trackID string, index int) (*ChecklistState, error) {
	m, err := s.checklistModule(trackID, index)
	if err != nil {
		return nil, err
	}

	if !s.checkAllEnabled(ctx, traineeID, trackID, index) {
		return nil, ErrCheckAllNotReady
	}

	var all []string
	for _, g := range m.Checklist.Groups {
		for _, item := range g.Items {
			all = append(all, item.ID)
		}
	}
	return s.UpdateChecklist(ctx, traineeID, trackID, index, all)
}

// QuizState is the quiz view for one module: the definition (answer keys
// stripped by serialization) plus the frozen result of a prior submission.
type QuizState struct {
	Definition *model.QuizDefinition `json:"definition"`
	Submitted  bool                  `json:"submitted"`
	Result     json.RawMessage       `json:"result,omitempty"`
}

// Quiz returns the quiz state for a module.
func (s *ProgressService) Quiz(ctx context.Context, traineeID, trackID string, index int) (*QuizState, error) {
	m, err := s.quizModule(trackID, index)
	if err != nil {
		return nil, err
	}

	submitted, err := s.store.Get(ctx, traineeID, progress.FeatureFlagKey(trackID, m.Quiz.Key))
	if err != nil {
		return nil, err
	}
	state := &QuizState{Definition: m.Quiz, Submitted: submitted}
	if submitted {
		stored, err := s.store.GetValue(ctx, traineeID, progress.QuizResultKey(trackID, index))
		if err != nil {
			return nil, err
		}
		state.Result = json.RawMessage(stored)
	}
	return state, nil
}

// QuizAnswer is a submitted quiz answer; Selected applies to multi-select
// quizzes, PickedID to pick-good quizzes.
type QuizAnswer struct {
	Selected []string `json:"selected,omitempty"`
	PickedID string   `json:"pickedId,omitempty"`
}

// SubmitQuiz evaluates a one-shot quiz answer. A second submission for the
// same quiz is rejected; the first result stays frozen.
func (s *ProgressService) SubmitQuiz(ctx context.Context, traineeID, trackID string, index int, answer QuizAnswer) (json.RawMessage, error) {
	m, err := s.quizModule(trackID, index)
	if err != nil {
		return nil, err
	}

	flagKey := progress.FeatureFlagKey(trackID, m.Quiz.Key)
	submitted, err := s.store.Get(ctx, traineeID, flagKey)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, ErrQuizAlreadySubmitted
	}

	var result interface{}
	switch m.Quiz.Kind {
	case model.QuizKindMultiSelect:
		result = quiz.EvaluateSelection(answer.Selected, m.Quiz)
	case model.QuizKindPickGood:
		result = quiz.EvaluatePick(answer.PickedID, m.Quiz)
	default:
		return nil, fmt.Errorf("unknown quiz kind: %s", m.Quiz.Kind)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetValue(ctx, traineeID, progress.QuizResultKey(trackID, index), string(data)); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, traineeID, flagKey); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *ProgressService) checklistModule(trackID string, index int) (*model.ModuleDefinition, error) {
	t, ok := track.Get(trackID)
	if !ok {
		return nil, ErrTrackNotFound
	}
	m := t.Module(index)
	if m == nil {
		return nil, ErrModuleNotFound
	}
	if m.Checklist == nil {
		return nil, ErrNoChecklist
	}
	return m, nil
}

func (s *ProgressService) quizModule(trackID string, index int) (*model.ModuleDefinition, error) {
	t, ok := track.Get(trackID)
	if !ok {
		return nil, ErrTrackNotFound
	}
	m := t.Module(index)
	if m == nil {
		return nil, ErrModuleNotFound
	}
	if m.Quiz == nil {
		return nil, ErrNoQuiz
	}
	return m, nil
}

func (s *ProgressService) checkedItems(ctx context.Context, traineeID, trackID string, index int) (map[string]bool, error) {
	stored, err := s.store.GetValue(ctx, traineeID, progress.ChecklistKey(trackID, index))
	if err != nil {
		return nil, err
	}
	checked := make(map[string]bool)
	if stored == "" {
		return checked, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(stored), &ids); err != nil {
		// Corrupt state reads as nothing checked.
		s.log.Warn("checklist state is corrupt, treating as empty",
			"trainee", traineeID, "track", trackID, "module", index, "error", err)
		return checked, nil
	}
	for _, id := range ids {
		checked[id] = true
	}
	return checked, nil
}

func (s *ProgressService) checkAllEnabled(ctx context.Context, traineeID, trackID string, index int) bool {
	stored, err := s.store.GetValue(ctx, traineeID, progress.FirstVisitKey(trackID, index))
	if err != nil || stored == "" {
		return false
	}
	firstVisit, err := time.Parse(time.RFC3339, stored)
	if err != nil {
		return false
	}
	return s.now().Sub(firstVisit) >= checkAllDelay
}

func (s *ProgressService) checklistState(ctx context.Context, traineeID, trackID string, index int, m *model.ModuleDefinition) (*ChecklistState, error) {
	checked, err := s.checkedItems(ctx, traineeID, trackID, index)
	if err != nil {
		return nil, err
	}

	checkedIDs := make([]string, 0, len(checked))
	groups := make([]GroupStatus, 0, len(m.Checklist.Groups))
	for _, g := range m.Checklist.Groups {
		groups = append(groups, GroupStatus{
			GroupID:   g.ID,
			Satisfied: quiz.IsGroupSatisfied(g, checked),
		})
		for _, item := range g.Items {
			if checked[item.ID] {
				checkedIDs = append(checkedIDs, item.ID)
			}
		}
	}

	return &ChecklistState{
		Definition:      m.Checklist,
		Checked:         checkedIDs,
		Groups:          groups,
		Complete:        quiz.IsChecklistComplete(m.Checklist, checked),
		CheckAllEnabled: s.checkAllEnabled(ctx, traineeID, trackID, index),
	}, nil
}
