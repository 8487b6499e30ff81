package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	generateSources sourceFlags
	generateOutput  string
	generateFormat  string
	generateUpload  string
)

// generateCmd fingerprints files into a baseline.
var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate a SHA-256 baseline",
	Long: `Computes the SHA-256 fingerprint of every file and writes the baseline.

The baseline CSV has the columns filename and sha256 and can be passed to compare later.

Examples:
  # Baseline of local files, written to a file
  generate docs/*.pdf -o baseline_checksums.csv

  # Baseline of bucket objects, also stored in the bucket
  generate --prefix releases/ --extension .tar.gz --upload baselines/releases.csv

  # Baseline of database rows
  generate --table documents --name-column path --content-column body`,
	RunE: runGenerate,
}

func init() {
	generateSources.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the baseline to this file instead of stdout")
	generateCmd.Flags().StringVar(&generateFormat, "format", "", "Output format: csv, json or table (default csv, table on a terminal)")
	generateCmd.Flags().StringVar(&generateUpload, "upload", "", "Also store the baseline CSV in the bucket under this object key")

	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := resolveFormat(generateFormat, generateOutput)
	if err != nil {
		return err
	}

	a, err := newCommandEnv(generateSources.workers, generateSources.table != "")
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	entries, err := a.entries(ctx, cmd, args, &generateSources)
	if err != nil {
		return err
	}

	result := a.service.Generate(ctx, entries)
	if err := a.checkFailures(result.Errors, generateSources.allowPartial); err != nil {
		return err
	}

	if err := writeOutput(generateOutput, func(w io.Writer) error {
		return renderFingerprints(w, format, result)
	}); err != nil {
		return err
	}
	if generateOutput != "" {
		a.logger.Info("Baseline written", zap.String("file", generateOutput), zap.Int("fingerprints", len(result.Fingerprints)))
	}

	if generateUpload != "" {
		if err := a.service.Export(ctx, generateUpload, result.Set); err != nil {
			return err
		}
	}
	return nil
}
