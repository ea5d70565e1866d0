package quiz_test

import (
	"testing"

	"beetacademy/internal/model"
	"beetacademy/internal/quiz"
)

var selectQuiz = &model.QuizDefinition{
	Key:  "sample",
	Kind: model.QuizKindMultiSelect,
	Elements: []model.QuizElement{
		{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"},
	},
	CorrectKeys: []string{"a", "b"},
}

func TestEvaluateSelection_PerfectLaw(t *testing.T) {
	cases := []struct {
		name     string
		selected []string
		perfect  bool
	}{
		{"exact match", []string{"a", "b"}, true},
		{"exact match, different order", []string{"b", "a"}, true},
		{"subset of correct", []string{"a"}, false},
		{"superset of correct", []string{"a", "b", "c"}, false},
		{"disjoint", []string{"c", "d"}, false},
		{"empty", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := quiz.EvaluateSelection(c.selected, selectQuiz)
			if result.Perfect != c.perfect {
				t.Errorf("Perfect = %v, want %v", result.Perfect, c.perfect)
			}
		})
	}
}

func TestEvaluateSelection_Verdicts(t *testing.T) {
	// a correct, b missed, c incorrectly added, d untouched.
	result := quiz.EvaluateSelection([]string{"a", "c"}, selectQuiz)

	if v := result.Verdicts["a"]; v != model.VerdictCorrect {
		t.Errorf("a = %q, want correct", v)
	}
	if v := result.Verdicts["b"]; v != model.VerdictMissed {
		t.Errorf("b = %q, want missed", v)
	}
	if v := result.Verdicts["c"]; v != model.VerdictIncorrect {
		t.Errorf("c = %q, want incorrect", v)
	}
	if _, ok := result.Verdicts["d"]; ok {
		t.Error("unselected wrong element should carry no verdict")
	}
}

func TestEvaluateSelection_Idempotent(t *testing.T) {
	first := quiz.EvaluateSelection([]string{"a", "c"}, selectQuiz)
	second := quiz.EvaluateSelection([]string{"a", "c"}, selectQuiz)
	if first.Perfect != second.Perfect || len(first.Verdicts) != len(second.Verdicts) {
		t.Error("same selection must always yield the same verdict")
	}
}

var pickQuiz = &model.QuizDefinition{
	Key:  "pick",
	Kind: model.QuizKindPickGood,
	Examples: []model.QuizExample{
		{ID: "left"},
		{ID: "right", IsGood: true},
	},
}

func TestEvaluatePick_RevealsBothSides(t *testing.T) {
	for _, picked := range []string{"left", "right"} {
		result := quiz.EvaluatePick(picked, pickQuiz)

		wantCorrect := picked == "right"
		if result.Correct != wantCorrect {
			t.Errorf("picked %q: Correct = %v, want %v", picked, result.Correct, wantCorrect)
		}
		if len(result.Reveal) != 2 {
			t.Fatalf("picked %q: reveal covers %d examples, want 2", picked, len(result.Reveal))
		}
		for _, rev := range result.Reveal {
			if rev.IsGood != (rev.ID == "right") {
				t.Errorf("reveal for %q misclassified", rev.ID)
			}
		}
	}
}

func TestIsGroupSatisfied_RequireAll(t *testing.T) {
	group := model.ChecklistGroup{
		RequireAll: true,
		Items: []model.ChecklistItem{
			{ID: "x"}, {ID: "y"}, {ID: "z"},
		},
	}

	checked := map[string]bool{"x": true, "y": true}
	if quiz.IsGroupSatisfied(group, checked) {
		t.Error("2 of 3 checked must not satisfy a requireAll group")
	}
	checked["z"] = true
	if !quiz.IsGroupSatisfied(group, checked) {
		t.Error("all checked must satisfy a requireAll group")
	}
}

func TestIsGroupSatisfied_RequireAny(t *testing.T) {
	group := model.ChecklistGroup{
		Items: []model.ChecklistItem{
			{ID: "x"}, {ID: "y"}, {ID: "z"},
		},
	}

	if quiz.IsGroupSatisfied(group, nil) {
		t.Error("empty selection must not satisfy a requireAny group")
	}
	if !quiz.IsGroupSatisfied(group, map[string]bool{"y": true}) {
		t.Error("one checked item must satisfy a requireAny group")
	}
}

func TestIsChecklistComplete_CombinationRule(t *testing.T) {
	def := &model.ChecklistDefinition{
		Groups: []model.ChecklistGroup{
			{ID: "must", RequireAll: true, Items: []model.ChecklistItem{{ID: "m1"}, {ID: "m2"}}},
			{ID: "any", Items: []model.ChecklistItem{{ID: "a1"}, {ID: "a2"}}},
		},
	}

	cases := []struct {
		name    string
		checked map[string]bool
		want    bool
	}{
		{"nothing", nil, false},
		{"requireAll partial", map[string]bool{"m1": true, "a1": true}, false},
		{"requireAny empty", map[string]bool{"m1": true, "m2": true}, false},
		{"both satisfied", map[string]bool{"m1": true, "m2": true, "a2": true}, true},
		{"everything", map[string]bool{"m1": true, "m2": true, "a1": true, "a2": true}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := quiz.IsChecklistComplete(def, c.checked); got != c.want {
				t.Errorf("IsChecklistComplete = %v, want %v", got, c.want)
			}
		})
	}
}
