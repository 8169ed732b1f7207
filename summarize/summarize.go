// Package summarize mines the structural shape of an HTML document: tag
// frequencies, repeated-structure groups, field hints, text patterns,
// redacted forms, and a JS-heaviness score. Summarization is a pure
// transformation — deterministic for identical input, holding no state
// across calls.
package summarize

import (
	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// Options tunes summarization. Zero values fall back to defaults.
type Options struct {
	// TopN truncates the tag-frequency table and the ranked
	// repeated-group list. Default: 20.
	TopN int

	// SampleSize is how many serialized occurrences each repeated
	// group retains. Default: 3.
	SampleSize int

	// MaxPatternExamples caps retained hits per text-pattern matcher.
	// Default: 20.
	MaxPatternExamples int

	// JSHeavyThreshold is the score at or above which the document is
	// flagged JS-heavy. Default: 0.3.
	JSHeavyThreshold float64
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = 20
	}
	if o.SampleSize <= 0 {
		o.SampleSize = 3
	}
	if o.MaxPatternExamples <= 0 {
		o.MaxPatternExamples = 20
	}
	if o.JSHeavyThreshold <= 0 {
		o.JSHeavyThreshold = 0.3
	}
	return o
}

// Summarize analyzes a parsed document. The document is only read; the
// same Document may be summarized and extracted from concurrently.
func Summarize(doc *dom.Document, opts Options) *models.Summary {
	opts = opts.withDefaults()

	stats := collectStats(doc, opts.TopN)
	groups := mineGroups(doc)
	ranked, repeated := repeatedGroups(groups, opts.TopN, opts.SampleSize)
	patterns := scanTextPatterns(doc, opts.MaxPatternExamples)
	ref := referenceGroup(ranked, repeated)
	score := jsScore(stats)

	return &models.Summary{
		Title:              stats.title,
		SizeBytes:          doc.SizeBytes(),
		TotalNodes:         stats.totalNodes,
		UniqueTags:         stats.uniqueTags,
		MaxDepth:           stats.maxDepth,
		TopTags:            stats.topTags,
		Headings:           stats.headings,
		Links:              stats.links,
		Images:             stats.images,
		Scripts:            stats.scripts,
		UniqueClasses:      stats.uniqueClasses,
		UniqueIDs:          stats.uniqueIDs,
		LongestTextPreview: stats.longestText,
		RepeatedGroups:     ranked,
		SuggestedContainer: suggestedContainer(ranked),
		FieldHints:         buildFieldHints(doc, patterns, ref),
		TextPatterns:       patterns,
		Forms:              inventoryForms(doc),
		JSScore:            score,
		JSHeavy:            score >= opts.JSHeavyThreshold,
	}
}

// SummarizeHTML parses raw HTML text and summarizes it. A document that
// cannot be modeled as a tree yields a PARSE_FAILURE error, never a
// panic that would abort a caller's batch.
func SummarizeHTML(htmlText string, topN int) (*models.Summary, error) {
	doc, err := dom.Parse(htmlText)
	if err != nil {
		return nil, models.NewSiftError(models.ErrCodeParseFailure, "document could not be parsed", err)
	}
	return Summarize(doc, Options{TopN: topN}), nil
}
