// Package export writes extraction results and validation reports to
// their stable persisted shapes: CSV and JSON record dumps, and the
// report artifact consumed by downstream suggestion tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/use-agent/pagesift/models"
)

// WriteRecordsCSV writes an extraction result as CSV with a fixed column
// scheme: index, the configured fields in canonical order, platform,
// scraped_at. Missing fields are written as empty cells.
func WriteRecordsCSV(w io.Writer, result *models.ExtractResult, fieldOrder []string) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(fieldOrder)+3)
	header = append(header, "index")
	header = append(header, fieldOrder...)
	header = append(header, "platform", "scraped_at")
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i := range result.Records {
		rec := &result.Records[i]
		row = row[:0]
		row = append(row, strconv.Itoa(rec.Index))
		for _, field := range fieldOrder {
			val, _ := rec.Value(field)
			row = append(row, val)
		}
		row = append(row, rec.Platform, rec.ScrapedAt.Format(time.RFC3339))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecordsJSON writes an extraction result as indented JSON.
func WriteRecordsJSON(w io.Writer, result *models.ExtractResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// WriteSummaryJSON writes a document summary as indented JSON.
func WriteSummaryJSON(w io.Writer, summary *models.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}

// ReportArtifact is the persisted validation artifact: the report, the
// configuration that produced it, optional suggestions, and a timestamp.
// Key names and nesting are stable across versions — downstream
// suggestion consumption keys off them.
type ReportArtifact struct {
	Report        *models.Report      `json:"report"`
	Configuration *models.Config      `json:"configuration"`
	Suggestions   []models.Suggestion `json:"suggestions,omitempty"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// WriteReportArtifact writes the validation artifact as indented JSON.
func WriteReportArtifact(w io.Writer, report *models.Report, cfg *models.Config, suggestions []models.Suggestion) error {
	artifact := ReportArtifact{
		Report:        report,
		Configuration: cfg,
		Suggestions:   suggestions,
		GeneratedAt:   time.Now().UTC(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(artifact)
}
