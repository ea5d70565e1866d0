// Package gate computes lock/current/completed status for the modules of a
// track from its definition and the trainee's current completion flags.
package gate

import (
	"fmt"

	"beetacademy/internal/model"
)

// FlagLookup reports whether the completion flag for a module index is set.
// Implementations must resolve missing or unreadable flags to false, so a
// module defaults to locked rather than silently unlocking.
type FlagLookup func(moduleIndex int) bool

// Evaluate computes one GateDecision per module, in track order. Pure: safe to
// call on every request.
//
// A module is locked iff it requires the previous module and that module's
// flag is not set. The first module is never locked. The current module is the
// lowest-indexed one whose path equals currentPath; if none matches, no module
// is current.
func Evaluate(track model.TrackDefinition, completed FlagLookup, currentPath string) []model.GateDecision {
	currentIndex := 0
	for _, m := range track.Modules {
		if m.Path == currentPath {
			currentIndex = m.Index
			break
		}
	}

	decisions := make([]model.GateDecision, 0, len(track.Modules))
	for i, m := range track.Modules {
		d := model.GateDecision{
			ModuleIndex: m.Index,
			IsCompleted: completed(m.Index),
			IsCurrent:   m.Index == currentIndex,
		}
		if m.RequiresPrevious && i > 0 {
			prev := track.Modules[i-1]
			if !completed(prev.Index) {
				d.IsLocked = true
				d.LockReason = fmt.Sprintf("Complete %q first", prev.Title)
			}
		}
		decisions = append(decisions, d)
	}
	return decisions
}
