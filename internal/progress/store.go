package progress

import (
	"context"
	"fmt"

	"beetacademy/internal/model"
)

// Store is the persisted per-trainee flag store. Boolean flags mark module and
// feature completion; string values hold composite state (serialized checklist
// sets, first-visit timestamps).
type Store interface {
	// Get reports whether the flag is set. Absent flags read as false.
	Get(ctx context.Context, traineeID, key string) (bool, error)
	// Set marks the flag true. Setting an already-true flag is a no-op.
	Set(ctx context.Context, traineeID, key string) error

	GetValue(ctx context.Context, traineeID, key string) (string, error)
	SetValue(ctx context.Context, traineeID, key, value string) error
	// SetValueIfAbsent writes the value only if the key has never been written
	// and reports whether it wrote.
	SetValueIfAbsent(ctx context.Context, traineeID, key, value string) (bool, error)

	// ResetAll removes the given keys for the trainee.
	ResetAll(ctx context.Context, traineeID string, keys []string) error
}

// ModuleFlagKey is the completion flag for one module of a track.
func ModuleFlagKey(trackID string, index int) string {
	return fmt.Sprintf("%s-module-%d-complete", trackID, index)
}

// FeatureFlagKey is the completion flag for a named track feature (quizzes,
// intro gates and similar).
func FeatureFlagKey(trackID, feature string) string {
	return fmt.Sprintf("%s-%s-complete", trackID, feature)
}

// ChecklistKey stores the serialized set of checked item ids for a module.
func ChecklistKey(trackID string, index int) string {
	return fmt.Sprintf("%s-module-%d-checklist", trackID, index)
}

// FirstVisitKey stores the timestamp of the first visit to a module, used to
// time-gate the check-all convenience action.
func FirstVisitKey(trackID string, index int) string {
	return fmt.Sprintf("%s-module-%d-first-visit", trackID, index)
}

// QuizResultKey stores the frozen result of a one-shot quiz submission.
func QuizResultKey(trackID string, index int) string {
	return fmt.Sprintf("%s-module-%d-quiz-result", trackID, index)
}

// ResetKeys derives every key a track can ever write from its definition, so
// that a reset is exhaustive without hand-maintained key lists.
func ResetKeys(track model.TrackDefinition) []string {
	var keys []string
	for _, m := range track.Modules {
		keys = append(keys, ModuleFlagKey(track.ID, m.Index))
		if m.Quiz != nil {
			keys = append(keys,
				FeatureFlagKey(track.ID, m.Quiz.Key),
				QuizResultKey(track.ID, m.Index),
			)
		}
		if m.Checklist != nil {
			keys = append(keys,
				ChecklistKey(track.ID, m.Index),
				FirstVisitKey(track.ID, m.Index),
			)
		}
	}
	for _, f := range track.AuxFlags {
		keys = append(keys, FeatureFlagKey(track.ID, f))
	}
	return keys
}
