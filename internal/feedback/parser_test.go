package feedback

import (
	"errors"
	"reflect"
	"testing"

	"beetacademy/internal/pkg/logger"
)

func newTestParser() *Parser {
	return NewParser(Categories, logger.NewNop())
}

func TestParse_RoundTrip(t *testing.T) {
	raw := `{"ambiguity": "{\"Ambiguity error\": true, \"Extremity\": \"moderate\", \"Edit instructions\": [\"Clarify X\"]}"}`

	results, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	got, ok := results[CategoryAmbiguity]
	if !ok {
		t.Fatal("expected ambiguity result")
	}
	if !got.Error {
		t.Error("expected error=true")
	}
	if got.Extremity != "moderate" {
		t.Errorf("extremity = %q, want %q", got.Extremity, "moderate")
	}
	if !reflect.DeepEqual(got.EditInstructions, []string{"Clarify X"}) {
		t.Errorf("edit instructions = %v, want [Clarify X]", got.EditInstructions)
	}

	summary := CountErrors(results)
	if summary.Errors != 1 || summary.Total != 1 {
		t.Errorf("CountErrors = %+v, want {Errors:1 Total:1}", summary)
	}
}

func TestParse_CategoryIsolation(t *testing.T) {
	// realism's inner payload is truncated; ambiguity must still parse.
	raw := `{
		"ambiguity": "{\"Ambiguity error\": false, \"Extremity\": \"subtle\", \"Edit instructions\": []}",
		"realism": "{\"Realism error\": true, \"Extrem"
	}`

	results, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := results[CategoryAmbiguity]; !ok {
		t.Error("valid category was dropped alongside the malformed one")
	}
	if _, ok := results[CategoryRealism]; ok {
		t.Error("malformed category should be omitted")
	}
	if summary := CountErrors(results); summary.Total != 1 {
		t.Errorf("total = %d, want 1 (malformed category must not count)", summary.Total)
	}
}

func TestParse_UnparsableEnvelope(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "[1,2,3"} {
		_, err := newTestParser().Parse(raw)
		if !errors.Is(err, ErrEnvelopeUnparsable) {
			t.Errorf("Parse(%q) error = %v, want ErrEnvelopeUnparsable", raw, err)
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	// Missing Extremity and Edit instructions fall back to defaults.
	raw := `{"consistency": "{\"Consistency error\": true}"}`

	results, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := results[CategoryConsistency]
	if got.Extremity != ExtremityUnknown {
		t.Errorf("extremity = %q, want %q", got.Extremity, ExtremityUnknown)
	}
	if len(got.EditInstructions) != 0 {
		t.Errorf("edit instructions = %v, want empty", got.EditInstructions)
	}
}

func TestParse_AbsentAndUnknownCategories(t *testing.T) {
	// Only known category keys contribute; unknown keys are ignored, absent
	// ones yield no entry.
	raw := `{
		"realism": "{\"Realism error\": false, \"Extremity\": \"subtle\", \"Edit instructions\": []}",
		"spelling": "{\"Spelling error\": true}"
	}`

	results, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if _, ok := results[CategoryRealism]; !ok {
		t.Error("expected realism result")
	}
}

func TestParse_NonStringCategoryPayload(t *testing.T) {
	// A category encoded as a bare object (not a string) violates the
	// double-encoding contract; skip it, keep siblings.
	raw := `{
		"ambiguity": {"Ambiguity error": true},
		"realism": "{\"Realism error\": true, \"Extremity\": \"extreme\", \"Edit instructions\": [\"Ground the scenario\"]}"
	}`

	results, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := results[CategoryAmbiguity]; ok {
		t.Error("non-string payload should be skipped")
	}
	if _, ok := results[CategoryRealism]; !ok {
		t.Error("sibling category should survive")
	}
}

func TestExtremityWeight_Ordering(t *testing.T) {
	if !(ExtremityWeight(ExtremityExtreme) > ExtremityWeight(ExtremityModerate) &&
		ExtremityWeight(ExtremityModerate) > ExtremityWeight(ExtremitySubtle) &&
		ExtremityWeight(ExtremitySubtle) > ExtremityWeight("anything else")) {
		t.Error("extremity weights must order extreme > moderate > subtle > unknown")
	}
}

func TestCountErrors_Empty(t *testing.T) {
	if summary := CountErrors(nil); summary.Errors != 0 || summary.Total != 0 {
		t.Errorf("CountErrors(nil) = %+v, want zero", summary)
	}
}
