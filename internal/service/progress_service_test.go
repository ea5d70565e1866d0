package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/progress"
	"beetacademy/internal/track"
)

const trainee = "trainee_progress"

func newTestProgressService() *ProgressService {
	return NewProgressService(progress.NewMemoryStore(), logger.NewNop())
}

// completeUpTo walks the prompt-writing track legitimately: submits quizzes
// and fills checklists before completing each module.
func completeUpTo(t *testing.T, svc *ProgressService, trackID string, through int) {
	t.Helper()
	ctx := context.Background()
	def, _ := track.Get(trackID)
	for _, m := range def.Modules {
		if m.Index > through {
			return
		}
		if m.Quiz != nil {
			answer := QuizAnswer{Selected: m.Quiz.CorrectKeys}
			if m.Quiz.Kind == model.QuizKindPickGood {
				for _, ex := range m.Quiz.Examples {
					if ex.IsGood {
						answer = QuizAnswer{PickedID: ex.ID}
					}
				}
			}
			if _, err := svc.SubmitQuiz(ctx, trainee, trackID, m.Index, answer); err != nil {
				t.Fatalf("quiz for module %d: %v", m.Index, err)
			}
		}
		if m.Checklist != nil {
			var all []string
			for _, g := range m.Checklist.Groups {
				for _, item := range g.Items {
					all = append(all, item.ID)
				}
			}
			if _, err := svc.UpdateChecklist(ctx, trainee, trackID, m.Index, all); err != nil {
				t.Fatalf("checklist for module %d: %v", m.Index, err)
			}
		}
		if err := svc.CompleteModule(ctx, trainee, trackID, m.Index); err != nil {
			t.Fatalf("complete module %d: %v", m.Index, err)
		}
	}
}

func TestCompleteModule_LockedRejected(t *testing.T) {
	svc := newTestProgressService()

	err := svc.CompleteModule(context.Background(), trainee, "prompt-writing", 2)
	if !errors.Is(err, ErrModuleLocked) {
		t.Fatalf("err = %v, want ErrModuleLocked", err)
	}
}

func TestCompleteModule_UnlocksNext(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()

	if err := svc.CompleteModule(ctx, trainee, "prompt-writing", 1); err != nil {
		t.Fatal(err)
	}

	_, gates, err := svc.Gates(ctx, trainee, "prompt-writing", "")
	if err != nil {
		t.Fatal(err)
	}
	if gates[0].IsCompleted != true {
		t.Error("module 1 should be completed")
	}
	if gates[1].IsLocked {
		t.Error("module 2 should be unlocked after module 1 completes")
	}
	if gates[2].IsLocked != true {
		t.Error("module 3 should stay locked")
	}
}

func TestCompleteModule_ChecklistGatesCompletion(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()
	completeUpTo(t, svc, "prompt-writing", 3)

	// Module 4 carries the validation checklist; completing it with a partial
	// checklist must fail.
	err := svc.CompleteModule(ctx, trainee, "prompt-writing", 4)
	if !errors.Is(err, ErrChecklistIncomplete) {
		t.Fatalf("err = %v, want ErrChecklistIncomplete", err)
	}

	def, _ := track.Get("prompt-writing")
	m := def.Module(4)
	var all []string
	for _, g := range m.Checklist.Groups {
		for _, item := range g.Items {
			all = append(all, item.ID)
		}
	}
	if _, err := svc.UpdateChecklist(ctx, trainee, "prompt-writing", 4, all); err != nil {
		t.Fatal(err)
	}
	if err := svc.CompleteModule(ctx, trainee, "prompt-writing", 4); err != nil {
		t.Fatalf("complete with full checklist: %v", err)
	}
}

func TestCompleteModule_QuizGatesCompletion(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()
	completeUpTo(t, svc, "prompt-writing", 1)

	err := svc.CompleteModule(ctx, trainee, "prompt-writing", 2)
	if !errors.Is(err, ErrQuizNotAttempted) {
		t.Fatalf("err = %v, want ErrQuizNotAttempted", err)
	}
}

func TestSubmitQuiz_OneShot(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()
	completeUpTo(t, svc, "prompt-writing", 1)

	first, err := svc.SubmitQuiz(ctx, trainee, "prompt-writing", 2, QuizAnswer{Selected: []string{"concrete-task"}})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.SubmitQuiz(ctx, trainee, "prompt-writing", 2, QuizAnswer{Selected: []string{"trick-wording"}})
	if !errors.Is(err, ErrQuizAlreadySubmitted) {
		t.Fatalf("err = %v, want ErrQuizAlreadySubmitted", err)
	}

	// The frozen result is served back unchanged.
	state, err := svc.Quiz(ctx, trainee, "prompt-writing", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !state.Submitted {
		t.Error("quiz should report submitted")
	}
	if string(state.Result) != string(first) {
		t.Error("stored result should match the first submission's result")
	}

	var result model.SelectionResult
	if err := json.Unmarshal(state.Result, &result); err != nil {
		t.Fatal(err)
	}
	if result.Perfect {
		t.Error("partial selection must not be perfect")
	}
}

func TestCheckAll_TimeGated(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()
	completeUpTo(t, svc, "prompt-writing", 3)

	base := time.Now()
	svc.now = func() time.Time { return base }

	// First visit recorded now; check-all immediately is denied.
	if _, err := svc.Checklist(ctx, trainee, "prompt-writing", 4); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAll(ctx, trainee, "prompt-writing", 4); !errors.Is(err, ErrCheckAllNotReady) {
		t.Fatalf("err = %v, want ErrCheckAllNotReady", err)
	}

	// Just before the delay elapses: still denied.
	svc.now = func() time.Time { return base.Add(checkAllDelay - time.Second) }
	if _, err := svc.CheckAll(ctx, trainee, "prompt-writing", 4); !errors.Is(err, ErrCheckAllNotReady) {
		t.Fatalf("err = %v, want ErrCheckAllNotReady", err)
	}

	// After the delay: allowed, and the checklist completes.
	svc.now = func() time.Time { return base.Add(checkAllDelay) }
	state, err := svc.CheckAll(ctx, trainee, "prompt-writing", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !state.Complete {
		t.Error("check-all should satisfy every group")
	}
	if !state.CheckAllEnabled {
		t.Error("check-all should report enabled after the delay")
	}
}

func TestUpdateChecklist_DropsUnknownItems(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()

	state, err := svc.UpdateChecklist(ctx, trainee, "prompt-writing", 4, []string{"one-reading", "forged-item"})
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Checked) != 1 || state.Checked[0] != "one-reading" {
		t.Errorf("checked = %v, want [one-reading]", state.Checked)
	}
}

func TestResetTrack_BackToInitialGates(t *testing.T) {
	svc := newTestProgressService()
	ctx := context.Background()
	completeUpTo(t, svc, "prompt-writing", 6)

	if err := svc.ResetTrack(ctx, trainee, "prompt-writing"); err != nil {
		t.Fatal(err)
	}

	_, gates, err := svc.Gates(ctx, trainee, "prompt-writing", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range gates {
		if g.IsCompleted {
			t.Errorf("module %d still completed after reset", g.ModuleIndex)
		}
		if g.ModuleIndex > 1 && !g.IsLocked {
			t.Errorf("module %d should be locked after reset", g.ModuleIndex)
		}
	}

	// Quiz state is reset too: a fresh submission is allowed.
	if _, err := svc.SubmitQuiz(ctx, trainee, "prompt-writing", 2, QuizAnswer{Selected: []string{"concrete-task"}}); err != nil {
		t.Fatalf("quiz after reset: %v", err)
	}
}

func TestGates_UnknownTrack(t *testing.T) {
	svc := newTestProgressService()
	_, _, err := svc.Gates(context.Background(), trainee, "no-such-track", "")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("err = %v, want ErrTrackNotFound", err)
	}
}
