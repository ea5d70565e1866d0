// Package quiz scores user selections against the static answer keys embedded
// in the track definitions. All evaluation is pure: the same selection always
// yields the same verdict.
package quiz

import "beetacademy/internal/model"

// EvaluateSelection scores a multi-select answer. Perfect means exact set
// equality with the answer key: every correct element selected and nothing
// else. Verdicts explain each element that was correct, missed, or
// incorrectly added; unselected wrong elements get no verdict.
func EvaluateSelection(selected []string, def *model.QuizDefinition) model.SelectionResult {
	selectedSet := make(map[string]bool, len(selected))
	for _, k := range selected {
		selectedSet[k] = true
	}
	correctSet := make(map[string]bool, len(def.CorrectKeys))
	for _, k := range def.CorrectKeys {
		correctSet[k] = true
	}

	result := model.SelectionResult{
		// Set equality, so keys outside the element list also spoil a perfect
		// answer.
		Perfect:  len(selectedSet) == len(correctSet),
		Verdicts: make(map[string]model.ElementVerdict),
	}
	for _, el := range def.Elements {
		switch {
		case correctSet[el.Key] && selectedSet[el.Key]:
			result.Verdicts[el.Key] = model.VerdictCorrect
		case correctSet[el.Key]:
			result.Verdicts[el.Key] = model.VerdictMissed
			result.Perfect = false
		case selectedSet[el.Key]:
			result.Verdicts[el.Key] = model.VerdictIncorrect
			result.Perfect = false
		}
	}
	return result
}

// EvaluatePick scores a pick-the-good-one answer. The reveal always covers
// every example, not just the picked one.
func EvaluatePick(pickedID string, def *model.QuizDefinition) model.PickResult {
	result := model.PickResult{
		Reveal: make([]model.ExampleReveal, 0, len(def.Examples)),
	}
	for _, ex := range def.Examples {
		result.Reveal = append(result.Reveal, model.ExampleReveal{ID: ex.ID, IsGood: ex.IsGood})
		if ex.ID == pickedID && ex.IsGood {
			result.Correct = true
		}
	}
	return result
}

// IsGroupSatisfied reports whether a checklist group is satisfied by the
// checked item set: every item for RequireAll groups, at least one otherwise.
func IsGroupSatisfied(group model.ChecklistGroup, checked map[string]bool) bool {
	if group.RequireAll {
		for _, item := range group.Items {
			if !checked[item.ID] {
				return false
			}
		}
		return true
	}
	for _, item := range group.Items {
		if checked[item.ID] {
			return true
		}
	}
	return false
}

// IsChecklistComplete reports whether every group of the checklist is
// satisfied: RequireAll groups fully checked, every other group with at least
// one check.
func IsChecklistComplete(def *model.ChecklistDefinition, checked map[string]bool) bool {
	for _, group := range def.Groups {
		if !IsGroupSatisfied(group, checked) {
			return false
		}
	}
	return true
}
