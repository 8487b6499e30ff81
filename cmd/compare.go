package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file-integrity/core/fingerprint"
	"file-integrity/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compareSources        sourceFlags
	compareBaseline       string
	compareBaselineObject string
	compareOutput         string
	compareFormat         string
	compareFailOnChange   bool
	compareWatch          bool
)

const watchDebounce = 300 * time.Millisecond

// compareCmd compares files against a baseline.
var compareCmd = &cobra.Command{
	Use:   "compare [files...]",
	Short: "Compare files with a baseline",
	Long: `Fingerprints the files and compares them with a baseline CSV.

Every name found on either side is reported once:
  unchanged  same digest in the baseline and now
  modified   different digest
  new        not in the baseline
  missing    in the baseline but not found now

The baseline comes from a local CSV (--baseline) or from the bucket (--baseline-object).
A baseline without the filename and sha256 columns is rejected before anything is hashed.

Examples:
  # Report as a table on the terminal
  compare docs/*.pdf --baseline baseline_checksums.csv

  # CSV report of bucket objects against a stored baseline, failing the build on changes
  compare --prefix releases/ --baseline-object baselines/releases.csv -o comparison_report.csv --fail-on-change

  # Re-run whenever one of the files changes
  compare config/*.yaml --baseline baseline_checksums.csv --watch`,
	RunE: runCompare,
}

func init() {
	compareSources.register(compareCmd)
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", "", "Baseline CSV file")
	compareCmd.Flags().StringVar(&compareBaselineObject, "baseline-object", "", "Object key of a baseline CSV in the bucket")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Write the report to this file instead of stdout")
	compareCmd.Flags().StringVar(&compareFormat, "format", "", "Output format: csv, json or table (default csv, table on a terminal)")
	compareCmd.Flags().BoolVar(&compareFailOnChange, "fail-on-change", false, "Exit with status 2 when anything is not unchanged")
	compareCmd.Flags().BoolVar(&compareWatch, "watch", false, "Re-run the comparison whenever a local file or the baseline changes")
	compareCmd.MarkFlagsMutuallyExclusive("baseline", "baseline-object")
	compareCmd.MarkFlagsOneRequired("baseline", "baseline-object")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(compareFormat, compareOutput)
	if err != nil {
		return err
	}
	if compareWatch && len(args) == 0 && compareBaseline == "" {
		return errors.New("--watch needs local files or a local --baseline to watch")
	}

	a, err := newCommandEnv(compareSources.workers, compareSources.table != "")
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	run := func(ctx context.Context) (*integrity.CompareResult, error) {
		entries, err := a.entries(ctx, cmd, args, &compareSources)
		if err != nil {
			return nil, err
		}

		result, err := compareWith(ctx, a.service, entries)
		if err != nil {
			return nil, err
		}
		if err := a.checkFailures(result.Errors, compareSources.allowPartial); err != nil {
			return nil, err
		}

		if err := writeOutput(compareOutput, func(w io.Writer) error {
			return renderComparison(w, format, result)
		}); err != nil {
			return nil, err
		}
		return result, nil
	}

	if !compareWatch {
		result, err := run(cmd.Context())
		if err != nil {
			return err
		}
		if compareFailOnChange && result.Summary.Changed() {
			return fmt.Errorf("%w: %s", errChangesDetected, summaryLine(result.Summary))
		}
		return nil
	}

	return watchCompare(cmd.Context(), a, args, run)
}

// compareWith parses the selected baseline before any entry is hashed.
func compareWith(ctx context.Context, svc *integrity.Service, entries []fingerprint.Entry) (*integrity.CompareResult, error) {
	if compareBaselineObject != "" {
		baseline, err := svc.LoadBaseline(ctx, compareBaselineObject)
		if err != nil {
			return nil, err
		}
		return svc.CompareSet(ctx, baseline, entries), nil
	}

	f, err := os.Open(compareBaseline)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline: %w", err)
	}
	defer f.Close()
	return svc.Compare(ctx, f, entries)
}

// watchCompare runs the comparison once, then again after every change until interrupted.
// Failed runs are logged and do not stop watching.
func watchCompare(parent context.Context, a *commandEnv, paths []string, run func(context.Context) (*integrity.CompareResult, error)) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watched := append([]string{}, paths...)
	if compareBaseline != "" {
		watched = append(watched, compareBaseline)
	}

	w, err := integrity.NewWatcher(watched, watchDebounce, a.logger)
	if err != nil {
		return err
	}

	runOnce := func() {
		result, err := run(ctx)
		if err != nil {
			a.logger.Error("Comparison failed", zap.Error(err))
			return
		}
		a.logger.Info("Comparison updated", zap.String("summary", summaryLine(result.Summary)))
	}

	runOnce()
	a.logger.Info("Watching for changes", zap.Int("files", len(watched)))
	return w.Run(ctx, runOnce)
}
