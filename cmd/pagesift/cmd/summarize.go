package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/export"
	"github.com/use-agent/pagesift/summarize"
)

var (
	summarizeTop    int
	summarizeOutput string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.html>",
	Short: "Analyze a document's structure and emit a JSON summary",
	Long: `Summarize parses an HTML file and reports its structural shape:
tag frequencies, ranked repeated-structure groups with suggested
selectors, a field-hint map, text-pattern inventory, redacted forms,
and a JS-heaviness score.

Examples:
  pagesift summarize page.html
  pagesift summarize page.html --top 40 -o summary.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().IntVar(&summarizeTop, "top", 0, "top-N for tag frequency and repeat ranking (default from config)")
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "write the JSON summary to this file instead of stdout")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	htmlText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc, err := dom.Parse(string(htmlText))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	opts := summarize.Options{
		TopN:               cfg.Summarizer.TopN,
		SampleSize:         cfg.Summarizer.SampleSize,
		MaxPatternExamples: cfg.Summarizer.MaxPatternExamples,
		JSHeavyThreshold:   cfg.Summarizer.JSHeavyThreshold,
	}
	if summarizeTop > 0 {
		opts.TopN = summarizeTop
	}
	summary := summarize.Summarize(doc, opts)

	w, closeFn, err := outputWriter(summarizeOutput)
	if err != nil {
		return err
	}
	defer closeFn()
	return export.WriteSummaryJSON(w, summary)
}
