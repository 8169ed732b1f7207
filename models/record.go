package models

import "time"

// MissingCandidate is the provenance index recorded when no selector
// candidate produced a value for a field.
const MissingCandidate = -1

// FieldValue is one extracted field with its provenance: which candidate
// index in the field's selector list produced the value. A missing field
// is explicit (Found false, Candidate MissingCandidate) and is never
// conflated with a present-but-empty string.
type FieldValue struct {
	Value     string `json:"value"`
	Found     bool   `json:"found"`
	Candidate int    `json:"candidate"`
}

// Record is one extracted item. Records are immutable once produced; a
// new extraction run yields an entirely new sequence.
type Record struct {
	// Index is the 1-based position of the source container in
	// document order.
	Index     int                   `json:"index"`
	Platform  string                `json:"platform"`
	ScrapedAt time.Time             `json:"scraped_at"`
	Fields    map[string]FieldValue `json:"fields"`
}

// Value returns the extracted value for a field and whether it was found.
func (r *Record) Value(field string) (string, bool) {
	fv, ok := r.Fields[field]
	if !ok || !fv.Found {
		return "", false
	}
	return fv.Value, true
}

// ExtractResult is the outcome of one extraction run: the ordered record
// sequence plus run-level provenance.
type ExtractResult struct {
	// RunID uniquely identifies this extraction run.
	RunID    string `json:"run_id"`
	Platform string `json:"platform"`

	// Status is StatusOK or StatusNoContainer.
	Status string `json:"status"`

	// ContainerSelector is the container candidate that matched;
	// ContainerCandidate its index in the candidate list (-1 when none).
	ContainerSelector  string `json:"container_selector,omitempty"`
	ContainerCandidate int    `json:"container_candidate"`

	Records []Record `json:"records"`
}
