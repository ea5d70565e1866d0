package feedback

import "beetacademy/internal/model"

// Category keys of the fixed evaluation schema. The external evaluator emits
// exactly these keys; anything else in a payload is ignored.
const (
	CategoryAmbiguity        = "ambiguity"
	CategoryTimelessness     = "timelessness"
	CategoryComplexity       = "complexity"
	CategoryConsistency      = "consistency"
	CategoryRealism          = "realism"
	CategoryLLMCompatibility = "llm_compatibility"
)

// CategoryOrder is the stable presentation order of the schema.
var CategoryOrder = []string{
	CategoryAmbiguity,
	CategoryTimelessness,
	CategoryComplexity,
	CategoryConsistency,
	CategoryRealism,
	CategoryLLMCompatibility,
}

// Categories maps each category key to its error key inside the category
// payload plus display metadata.
var Categories = map[string]model.CategoryConfig{
	CategoryAmbiguity: {
		ErrorKey:    "Ambiguity error",
		Label:       "Ambiguity",
		Description: "The prompt can be read in more than one way, or leaves the expected output underspecified.",
	},
	CategoryTimelessness: {
		ErrorKey:    "Timelessness error",
		Label:       "Timelessness",
		Description: "The prompt depends on facts that will go stale, such as current events or mutable rankings.",
	},
	CategoryComplexity: {
		ErrorKey:    "Complexity error",
		Label:       "Complexity",
		Description: "The prompt is too easy to meaningfully separate strong responses from weak ones.",
	},
	CategoryConsistency: {
		ErrorKey:    "Consistency error",
		Label:       "Consistency",
		Description: "The prompt contradicts itself or imposes constraints that cannot all be satisfied.",
	},
	CategoryRealism: {
		ErrorKey:    "Realism error",
		Label:       "Realism",
		Description: "No plausible user would ask this; the scenario is contrived.",
	},
	CategoryLLMCompatibility: {
		ErrorKey:    "LLM-compatibility error",
		Label:       "LLM compatibility",
		Description: "The prompt asks for something a text model cannot deliver, such as real-time data or actions.",
	},
}

// Extremity weights, used for presentation ordering only. Unknown labels
// weigh zero.
const (
	ExtremityExtreme  = "extreme"
	ExtremityModerate = "moderate"
	ExtremitySubtle   = "subtle"
	ExtremityUnknown  = "unknown"
)

var extremityWeights = map[string]int{
	ExtremityExtreme:  3,
	ExtremityModerate: 2,
	ExtremitySubtle:   1,
}

// ExtremityWeight returns the display weight for a severity label.
func ExtremityWeight(extremity string) int {
	return extremityWeights[extremity]
}
