package cmd

import (
	"context"
	"fmt"

	"file-integrity/core/config"
	"file-integrity/core/database"
	"file-integrity/core/fingerprint"
	"file-integrity/core/logger"
	"file-integrity/core/storage"
	"file-integrity/feature/integrity"
	"file-integrity/feature/integrity/sources"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sourceFlags selects where the content to fingerprint comes from.
// Sources combine: local files, bucket objects and table rows can be used together.
type sourceFlags struct {
	prefix        string
	extension     string
	table         string
	nameColumn    string
	contentColumn string
	workers       int
	fullPath      bool
	allowPartial  bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.prefix, "prefix", "", "Fingerprint bucket objects under this prefix")
	flags.StringVar(&f.extension, "extension", "", "Only bucket objects ending with this extension")
	flags.StringVar(&f.table, "table", "", "Fingerprint the rows of this database table")
	flags.StringVar(&f.nameColumn, "name-column", "name", "Table column holding the names")
	flags.StringVar(&f.contentColumn, "content-column", "content", "Table column holding the content")
	flags.IntVar(&f.workers, "workers", 0, "Files hashed concurrently (default from INTEGRITY_WORKERS)")
	flags.BoolVar(&f.fullPath, "full-path", false, "Name local files by the path as given instead of the base name")
	flags.BoolVar(&f.allowPartial, "allow-partial", false, "Continue when some files cannot be read")
}

// commandEnv bundles what a command needs after configuration is loaded.
type commandEnv struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *integrity.Service
}

// newCommandEnv loads configuration and builds the integrity service. The database is
// only connected when needDB is set. The storage client is lazy and always created.
func newCommandEnv(workers int, needDB bool) (*commandEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if workers > 0 {
		cfg.Integrity.Workers = workers
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	if needDB {
		if !cfg.Database.Enabled() {
			return nil, fmt.Errorf("--table needs DATABASE_DRIVER to be set: %w", integrity.ErrDatabaseUnavailable)
		}
		if db, err = database.Connect(cfg.Database); err != nil {
			return nil, err
		}
	}

	return &commandEnv{
		cfg:     cfg,
		logger:  logg,
		service: integrity.NewService(client, cfg.Storage.Bucket, logg, db, cfg.Integrity),
	}, nil
}

// entries gathers the entries of every selected source, local files first.
func (e *commandEnv) entries(ctx context.Context, cmd *cobra.Command, paths []string, f *sourceFlags) ([]fingerprint.Entry, error) {
	out := sources.Files(paths, f.fullPath)

	if cmd.Flags().Changed("prefix") {
		objects, err := e.service.ObjectEntries(ctx, f.prefix, f.extension)
		if err != nil {
			return nil, err
		}
		out = append(out, objects...)
	}

	if f.table != "" {
		rows, err := e.service.TableEntries(ctx, f.table, f.nameColumn, f.contentColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: pass files, --prefix or --table", integrity.ErrNoInput)
	}
	return out, nil
}

// checkFailures logs read failures and turns them into an error unless partial results are allowed.
func (e *commandEnv) checkFailures(failures []integrity.Failure, allowPartial bool) error {
	for _, f := range failures {
		e.logger.Warn("File could not be read", zap.String("name", f.Filename), zap.String("error", f.Error))
	}
	if len(failures) == 0 || allowPartial {
		return nil
	}
	return fmt.Errorf("%d file(s) could not be read, rerun with --allow-partial to accept a partial result", len(failures))
}
