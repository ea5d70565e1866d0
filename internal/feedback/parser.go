package feedback

import (
	"encoding/json"
	"errors"

	"beetacademy/internal/model"
	"beetacademy/internal/pkg/logger"
)

// ErrEnvelopeUnparsable means the outer feedback document is not valid JSON.
// Callers fall back to displaying the raw text.
var ErrEnvelopeUnparsable = errors.New("feedback envelope is not valid JSON")

// Parser decodes evaluator feedback payloads against a fixed category schema.
//
// The wire format is double-encoded: the outer document maps category keys to
// JSON-encoded strings, and each string is its own JSON document. The second
// parse pass is per category, so one malformed category never hides results
// for its siblings.
type Parser struct {
	categories map[string]model.CategoryConfig
	log        *logger.Logger
}

// NewParser creates a parser over the given category schema.
func NewParser(categories map[string]model.CategoryConfig, log *logger.Logger) *Parser {
	return &Parser{
		categories: categories,
		log:        log.With("component", "feedback-parser"),
	}
}

// Parse converts a raw feedback document into per-category results. Categories
// that are absent, not string-encoded, or whose inner document fails to parse
// are omitted from the result. Only an unparsable outer document is an error.
func (p *Parser) Parse(raw string) (map[string]model.CategoryResult, error) {
	if raw == "" {
		return nil, ErrEnvelopeUnparsable
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, ErrEnvelopeUnparsable
	}

	results := make(map[string]model.CategoryResult)
	for key, cfg := range p.categories {
		encoded, ok := envelope[key]
		if !ok {
			continue
		}

		var inner string
		if err := json.Unmarshal(encoded, &inner); err != nil {
			p.log.Warn("category payload is not string-encoded, skipping", "category", key, "error", err)
			continue
		}

		result, err := decodeCategory(inner, cfg)
		if err != nil {
			p.log.Warn("category payload failed to parse, skipping", "category", key, "error", err)
			continue
		}
		results[key] = result
	}
	return results, nil
}

func decodeCategory(inner string, cfg model.CategoryConfig) (model.CategoryResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(inner), &fields); err != nil {
		return model.CategoryResult{}, err
	}

	result := model.CategoryResult{
		Extremity:        ExtremityUnknown,
		EditInstructions: []string{},
	}

	if raw, ok := fields[cfg.ErrorKey]; ok {
		var hasError bool
		if err := json.Unmarshal(raw, &hasError); err == nil {
			result.Error = hasError
		}
	}
	if raw, ok := fields["Extremity"]; ok {
		var extremity string
		if err := json.Unmarshal(raw, &extremity); err == nil && extremity != "" {
			result.Extremity = extremity
		}
	}
	if raw, ok := fields["Edit instructions"]; ok {
		var instructions []string
		if err := json.Unmarshal(raw, &instructions); err == nil {
			result.EditInstructions = instructions
		}
	}
	return result, nil
}

// CountErrors aggregates parsed categories. Categories missing from the map
// count toward neither errors nor total.
func CountErrors(results map[string]model.CategoryResult) model.FeedbackSummary {
	summary := model.FeedbackSummary{Total: len(results)}
	for _, r := range results {
		if r.Error {
			summary.Errors++
		}
	}
	return summary
}
