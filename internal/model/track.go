package model

// ModuleDefinition is one step within a training track. Static configuration,
// never mutated at runtime.
type ModuleDefinition struct {
	Index            int    `json:"index"` // 1-based
	Title            string `json:"title"`
	Path             string `json:"path"`
	RequiresPrevious bool   `json:"requiresPrevious"`

	// Optional interactive content attached to the module.
	Quiz      *QuizDefinition      `json:"quiz,omitempty"`
	Checklist *ChecklistDefinition `json:"checklist,omitempty"`
}

// TrackDefinition is an ordered sequence of modules belonging to a named track.
type TrackDefinition struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Modules []ModuleDefinition `json:"modules"`

	// AuxFlags are track-level feature flag suffixes (e.g. "intro") whose keys
	// must be included when the track's progress is reset.
	AuxFlags []string `json:"-"`
}

// Module returns the module with the given 1-based index, or nil.
func (t TrackDefinition) Module(index int) *ModuleDefinition {
	for i := range t.Modules {
		if t.Modules[i].Index == index {
			return &t.Modules[i]
		}
	}
	return nil
}

// GateDecision is the computed lock/current/completed status for one module.
// Derived from TrackDefinition plus current flags; never persisted.
type GateDecision struct {
	ModuleIndex int    `json:"moduleIndex"`
	IsLocked    bool   `json:"isLocked"`
	IsCompleted bool   `json:"isCompleted"`
	IsCurrent   bool   `json:"isCurrent"`
	LockReason  string `json:"lockReason,omitempty"`
}
