package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/pagesift/export"
	"github.com/use-agent/pagesift/extract"
	"github.com/use-agent/pagesift/models"
)

var (
	extractConfig   string
	extractPlatform string
	extractFormat   string
	extractOutput   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.html>",
	Short: "Extract records using a selector configuration",
	Long: `Extract applies a selector configuration (JSON or YAML) to an HTML
file and emits the extracted records with per-field provenance.

Examples:
  pagesift extract page.html --selectors amazon.yaml --platform amazon
  pagesift extract page.html --selectors sel.json --format csv -o products.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractConfig, "selectors", "", "selector configuration file (required)")
	extractCmd.Flags().StringVar(&extractPlatform, "platform", "unknown", "platform label recorded on each record")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "output format: json or csv")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write output to this file instead of stdout")
	extractCmd.MarkFlagRequired("selectors")
}

func runExtract(cmd *cobra.Command, args []string) error {
	selCfg, err := models.LoadConfig(extractConfig)
	if err != nil {
		return err
	}

	htmlText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	result, err := extract.ExtractHTML(string(htmlText), selCfg, extractPlatform)
	if err != nil {
		return err
	}

	w, closeFn, err := outputWriter(extractOutput)
	if err != nil {
		return err
	}
	defer closeFn()

	switch extractFormat {
	case "csv":
		return export.WriteRecordsCSV(w, result, selCfg.FieldOrder())
	case "json":
		return export.WriteRecordsJSON(w, result)
	default:
		return fmt.Errorf("unknown output format %q", extractFormat)
	}
}
