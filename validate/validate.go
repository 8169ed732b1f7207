// Package validate scores an extracted record sequence against its
// configuration: per-field success rates, semantic-validity checks, a
// weighted aggregate score, and improvement suggestions drawn from the
// summarizer's field-hint map.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/use-agent/pagesift/models"
)

// maxFailureSamples caps the raw failed values attached per field.
const maxFailureSamples = 3

// Name length bounds; a "name" outside them is a format failure.
const (
	minNameLen = 2
	maxNameLen = 300
)

var numberPattern = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// semanticKind classifies a configured field name into its validator.
type semanticKind int

const (
	kindText semanticKind = iota
	kindPrice
	kindRating
	kindCount
	kindName
)

func classifyField(name string) semanticKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "price"):
		return kindPrice
	case strings.Contains(lower, "rating"):
		return kindRating
	case strings.Contains(lower, "review") || strings.Contains(lower, "discount"):
		return kindCount
	case lower == "name" || lower == "title":
		return kindName
	default:
		return kindText
	}
}

// firstNumber extracts the first numeric token from a raw value.
func firstNumber(raw string) (float64, bool) {
	m := numberPattern.FindString(raw)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// semanticallyValid applies the field's semantic validator to a present
// value. Failures here are format failures — distinct from missing.
func semanticallyValid(kind semanticKind, raw string, rules *models.ValidationRules) bool {
	switch kind {
	case kindPrice:
		v, ok := firstNumber(raw)
		return ok && v > 0 && !math.IsInf(v, 0) && v < rules.PriceCeiling
	case kindRating:
		v, ok := firstNumber(raw)
		return ok && v >= 0 && v <= rules.RatingScale
	case kindCount:
		v, ok := firstNumber(raw)
		return ok && v >= 0 && v == math.Trunc(v)
	case kindName:
		return len(raw) >= minNameLen && len(raw) <= maxNameLen
	default:
		return true
	}
}

// Validate computes the validation report for one record sequence. The
// per-field success rate counts presence only; semantic failures are
// tracked separately and never lower the rate. A value repeated across
// most records of a name-like field raises a duplication warning — a
// warning channel only, by design kept out of the score.
func Validate(records []models.Record, cfg *models.Config) (*models.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &models.Report{
		TotalRecords: len(records),
		GeneratedAt:  time.Now().UTC(),
	}
	if len(records) > 0 {
		report.Platform = records[0].Platform
	}

	var weightedSum, weightTotal float64
	forcePoor := false

	for _, field := range cfg.FieldOrder() {
		fr := models.FieldReport{Field: field, Total: len(records)}
		kind := classifyField(field)
		values := make(map[string]int)

		for i := range records {
			raw, ok := records[i].Value(field)
			if !ok {
				continue
			}
			fr.Present++
			values[raw]++
			if !semanticallyValid(kind, raw, &cfg.Rules) {
				fr.FormatFailures++
				if len(fr.FailureSamples) < maxFailureSamples {
					fr.FailureSamples = append(fr.FailureSamples, raw)
				}
			}
		}

		if fr.Total > 0 {
			fr.SuccessRate = float64(fr.Present) / float64(fr.Total)
		}
		fr.Status = models.StatusFor(fr.SuccessRate)

		if kind == kindName && fr.Present > 1 {
			top := 0
			for _, c := range values {
				if c > top {
					top = c
				}
			}
			if float64(top)/float64(fr.Present) >= cfg.Rules.DuplicateRatio {
				fr.DuplicateWarning = true
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"field %q repeats one value across %d of %d records; the selector may match a template element",
					field, top, fr.Present))
			}
		}

		w := cfg.Rules.Weight(field)
		weightedSum += fr.SuccessRate * w
		weightTotal += w

		if cfg.Rules.IsRequired(field) && fr.Present == 0 {
			forcePoor = true
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"required field %q extracted in zero records", field))
		}

		report.Fields = append(report.Fields, fr)
	}

	if weightTotal > 0 {
		report.OverallScore = weightedSum / weightTotal
	}
	report.Status = models.StatusFor(report.OverallScore)
	if forcePoor {
		report.Status = models.StatusPoor
	}
	return report, nil
}
