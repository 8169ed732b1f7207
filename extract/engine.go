package extract

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// Extract runs the configuration against a parsed document and returns
// the ordered record sequence with per-field provenance. Records follow
// container document order; on an unchanged document and configuration
// the ordering and values are reproduced identically across runs.
//
// An invalid configuration is rejected before any extraction attempt.
// A container that matches nothing is a reportable zero-record outcome,
// not an error. Individual field failures never abort the run — partial
// success is the expected default.
func Extract(doc *dom.Document, cfg *models.Config, platform string) (*models.ExtractResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &models.ExtractResult{
		RunID:              uuid.NewString(),
		Platform:           platform,
		Status:             models.StatusOK,
		ContainerCandidate: models.MissingCandidate,
		Records:            []models.Record{},
	}

	containers, containerIdx := ResolveContainer(doc, cfg.Container)
	if len(containers) == 0 {
		result.Status = models.StatusNoContainer
		slog.Info("no container matched", "platform", platform,
			"candidates", len(cfg.Container.Selectors))
		return result, nil
	}
	result.ContainerCandidate = containerIdx
	result.ContainerSelector = cfg.Container.Selectors[containerIdx]

	scrapedAt := time.Now().UTC()
	for i, container := range containers {
		record := models.Record{
			Index:     i + 1,
			Platform:  platform,
			ScrapedAt: scrapedAt,
			Fields:    make(map[string]models.FieldValue, len(cfg.Fields)),
		}
		for _, field := range cfg.FieldOrder() {
			value, candidate := resolveField(container, cfg.Fields[field])
			record.Fields[field] = models.FieldValue{
				Value:     value,
				Found:     candidate != models.MissingCandidate,
				Candidate: candidate,
			}
		}
		result.Records = append(result.Records, record)
	}

	slog.Debug("extraction complete", "platform", platform,
		"run_id", result.RunID,
		"containers", len(containers),
		"container_selector", result.ContainerSelector)
	return result, nil
}

// ExtractHTML parses raw HTML text and extracts records from it.
func ExtractHTML(htmlText string, cfg *models.Config, platform string) (*models.ExtractResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(htmlText)
	if err != nil {
		return nil, models.NewSiftError(models.ErrCodeParseFailure, "document could not be parsed", err)
	}
	return Extract(doc, cfg, platform)
}
