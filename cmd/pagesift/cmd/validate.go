package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/export"
	"github.com/use-agent/pagesift/extract"
	"github.com/use-agent/pagesift/models"
	"github.com/use-agent/pagesift/summarize"
	"github.com/use-agent/pagesift/validate"
)

var (
	validateConfig   string
	validatePlatform string
	validateSuggest  bool
	validateOutput   string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.html>",
	Short: "Score an extraction and propose selector improvements",
	Long: `Validate runs an extraction, scores per-field success and semantic
validity, and writes the validation report artifact. With --suggest the
document is also summarized and underperforming fields get replacement
selector candidates from the field-hint map.

Examples:
  pagesift validate page.html --selectors amazon.yaml --platform amazon
  pagesift validate page.html --selectors sel.json --suggest -o report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateConfig, "selectors", "", "selector configuration file (required)")
	validateCmd.Flags().StringVar(&validatePlatform, "platform", "unknown", "platform label recorded on each record")
	validateCmd.Flags().BoolVar(&validateSuggest, "suggest", false, "include improvement suggestions in the report")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "write the report artifact to this file instead of stdout")
	validateCmd.MarkFlagRequired("selectors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	selCfg, err := models.LoadConfig(validateConfig)
	if err != nil {
		return err
	}

	htmlText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc, err := dom.Parse(string(htmlText))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	result, err := extract.Extract(doc, selCfg, validatePlatform)
	if err != nil {
		return err
	}

	report, err := validate.Validate(result.Records, selCfg)
	if err != nil {
		return err
	}

	var suggestions []models.Suggestion
	if validateSuggest {
		summary := summarize.Summarize(doc, summarize.Options{
			TopN:               cfg.Summarizer.TopN,
			SampleSize:         cfg.Summarizer.SampleSize,
			MaxPatternExamples: cfg.Summarizer.MaxPatternExamples,
			JSHeavyThreshold:   cfg.Summarizer.JSHeavyThreshold,
		})
		suggestions = validate.Suggest(report, selCfg, summary.FieldHints)
	}

	w, closeFn, err := outputWriter(validateOutput)
	if err != nil {
		return err
	}
	defer closeFn()
	return export.WriteReportArtifact(w, report, selCfg, suggestions)
}
