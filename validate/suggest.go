package validate

import (
	"strings"

	"github.com/use-agent/pagesift/models"
)

// semanticFieldFor maps a configured field name to its field-hint-map
// key. Fields with no semantic counterpart get no suggestions.
func semanticFieldFor(field string) string {
	lower := strings.ToLower(field)
	switch {
	case lower == "name" || lower == "title":
		return "title"
	case strings.Contains(lower, "price"):
		return "price"
	case strings.Contains(lower, "rating"):
		return "rating"
	case strings.Contains(lower, "review"):
		return "reviews"
	case strings.Contains(lower, "image") || strings.Contains(lower, "img"):
		return "image"
	case strings.Contains(lower, "link") || strings.Contains(lower, "url"):
		return "link"
	default:
		return ""
	}
}

// reasonFor picks the dominant reason a field needs attention.
func reasonFor(fr *models.FieldReport) string {
	switch {
	case fr.SuccessRate < models.GoodThreshold:
		return models.ReasonLowSuccess
	case fr.FormatFailures > 0:
		return models.ReasonFormatFailures
	default:
		return models.ReasonDuplicateValues
	}
}

// Suggest combines report gaps with the summarizer's field-hint map.
// For each underperforming field it proposes the highest-confidence hint
// candidate not already present among the field's configured selectors —
// a suggestion is never a duplicate of an existing candidate. Pure
// function; neither input is mutated.
func Suggest(report *models.Report, cfg *models.Config, hints map[string][]models.FieldHint) []models.Suggestion {
	var suggestions []models.Suggestion
	for i := range report.Fields {
		fr := &report.Fields[i]
		needsWork := fr.SuccessRate < models.GoodThreshold ||
			fr.FormatFailures > 0 || fr.DuplicateWarning
		if !needsWork {
			continue
		}

		semantic := semanticFieldFor(fr.Field)
		if semantic == "" {
			continue
		}
		spec := cfg.Fields[fr.Field]
		if spec == nil {
			continue
		}

		for _, hint := range hints[semantic] {
			if spec.HasSelector(hint.Selector) {
				continue
			}
			suggestions = append(suggestions, models.Suggestion{
				Field:          fr.Field,
				Reason:         reasonFor(fr),
				Selector:       hint.Selector,
				Attribute:      hint.Attribute,
				Confidence:     hint.Confidence,
				FailureSamples: fr.FailureSamples,
			})
			break
		}
	}
	return suggestions
}
