package cmd

import (
	"errors"
	"fmt"
	"os"

	"file-integrity/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errChangesDetected makes compare --fail-on-change exit with code 2.
var errChangesDetected = errors.New("changes detected")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "file-integrity",
	Short: "SHA-256 baselines and integrity comparison",
	Long: `file-integrity fingerprints files with SHA-256 and compares them against a baseline.

Files can come from the local disk, an S3/MinIO bucket or a database table.
Every name is reported as unchanged, modified, new or missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, errChangesDetected) {
		os.Exit(2)
	}

	// Console encoding with the development config gives readable timestamps on a terminal
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
