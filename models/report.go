package models

import "time"

// Report statuses, applied uniformly per field and overall.
const (
	StatusGood             = "good"
	StatusNeedsImprovement = "needs_improvement"
	StatusPoor             = "poor"
)

// Score thresholds: good >= 0.8, needs_improvement in [0.5, 0.8),
// poor < 0.5.
const (
	GoodThreshold = 0.8
	PoorThreshold = 0.5
)

// StatusFor maps a score in [0,1] to a categorical status.
func StatusFor(score float64) string {
	switch {
	case score >= GoodThreshold:
		return StatusGood
	case score >= PoorThreshold:
		return StatusNeedsImprovement
	default:
		return StatusPoor
	}
}

// FieldReport is the per-field validation outcome. FormatFailures counts
// values that were present but semantically invalid — distinct from
// missing, and never subtracted from the success rate.
type FieldReport struct {
	Field       string  `json:"field"`
	Total       int     `json:"total"`
	Present     int     `json:"present"`
	SuccessRate float64 `json:"success_rate"`

	FormatFailures int      `json:"format_failures"`
	FailureSamples []string `json:"failure_samples,omitempty"`

	// DuplicateWarning flags a value repeated across most records,
	// which suggests the selector matched a static template element.
	// Warning channel only; it does not lower the success rate.
	DuplicateWarning bool `json:"duplicate_warning"`

	Status string `json:"status"`
}

// Report is the aggregate validation outcome of one record sequence.
type Report struct {
	Platform     string        `json:"platform"`
	TotalRecords int           `json:"total_records"`
	Fields       []FieldReport `json:"fields"`

	// OverallScore is the weighted mean of per-field success rates.
	OverallScore float64   `json:"overall_score"`
	Status       string    `json:"status"`
	Warnings     []string  `json:"warnings,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// FieldFor returns the report row for a field, or nil.
func (r *Report) FieldFor(name string) *FieldReport {
	for i := range r.Fields {
		if r.Fields[i].Field == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// Suggestion proposes a replacement selector for an underperforming
// field, drawn from the summarizer's field-hint map.
type Suggestion struct {
	Field      string  `json:"field"`
	Reason     string  `json:"reason"`
	Selector   string  `json:"selector"`
	Attribute  string  `json:"attribute,omitempty"`
	Confidence float64 `json:"confidence"`

	// FailureSamples holds up to a few raw values that failed semantic
	// validation, to aid debugging.
	FailureSamples []string `json:"failure_samples,omitempty"`
}

// Suggestion reasons.
const (
	ReasonLowSuccess      = "low_success_rate"
	ReasonFormatFailures  = "format_failures"
	ReasonDuplicateValues = "duplicate_values"
)
