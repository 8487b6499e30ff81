package integrity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"file-integrity/core/fingerprint"
	"file-integrity/core/reconcile"
	"file-integrity/core/report"
	"file-integrity/core/storage"
	"file-integrity/feature/integrity/sources"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrBaselineNotFound is returned when a stored baseline object does not exist.
	ErrBaselineNotFound = errors.New("baseline not found")

	// ErrDatabaseUnavailable is returned for table sources when no database is connected.
	ErrDatabaseUnavailable = errors.New("database is not configured")

	// ErrStorageUnavailable is returned for bucket operations when no storage client is configured.
	ErrStorageUnavailable = errors.New("storage is not configured")

	// ErrNoInput is returned when there is nothing to fingerprint.
	ErrNoInput = errors.New("no files to fingerprint")
)

// Failure is the user facing form of a read failure.
type Failure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// GenerateResult is the outcome of fingerprinting a batch.
type GenerateResult struct {
	// Fingerprints holds one record per name, sorted by name.
	Fingerprints []fingerprint.Record `json:"fingerprints"`
	// Errors lists the entries that could not be read, in input order.
	Errors []Failure `json:"errors"`

	// Set is the fingerprint set behind Fingerprints.
	Set fingerprint.Set `json:"-"`
}

// CompareResult is the outcome of comparing a batch against a baseline.
type CompareResult struct {
	Results []reconcile.Record `json:"results"`
	Summary reconcile.Summary  `json:"summary"`
	Errors  []Failure          `json:"errors"`
}

// Service fingerprints byte sources and compares them against baselines.
type Service struct {
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	db        *gorm.DB
	cfg       Config
	baselines *reconcile.BaselineCache
}

// NewService creates a new integrity service. client and db may be nil when
// the bucket or database sources are not used.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		logger:    logger,
		db:        db,
		cfg:       cfg,
		baselines: reconcile.NewBaselineCache(cfg.BaselineCacheTTL()),
	}
}

// Generate fingerprints entries. Unreadable entries are reported, not fatal.
func (s *Service) Generate(ctx context.Context, entries []fingerprint.Entry) *GenerateResult {
	set, failures := fingerprint.Generate(ctx, entries, fingerprint.Options{Workers: s.cfg.Workers})
	s.logFailures(failures)
	s.logger.Info("Fingerprints generated",
		zap.Int("entries", len(entries)),
		zap.Int("fingerprints", len(set)),
		zap.Int("failures", len(failures)))

	return &GenerateResult{
		Fingerprints: set.Records(),
		Errors:       toFailures(failures),
		Set:          set,
	}
}

// Compare parses baseline as a fingerprint CSV and compares entries against it.
// Parse and schema errors abort before anything is hashed.
func (s *Service) Compare(ctx context.Context, baseline io.Reader, entries []fingerprint.Entry) (*CompareResult, error) {
	set, err := report.ReadFingerprints(baseline)
	if err != nil {
		return nil, err
	}
	return s.CompareSet(ctx, set, entries), nil
}

// CompareStored compares entries against the baseline stored in the bucket under name.
func (s *Service) CompareStored(ctx context.Context, name string, entries []fingerprint.Entry) (*CompareResult, error) {
	set, err := s.LoadBaseline(ctx, s.cfg.BaselineKey(name))
	if err != nil {
		return nil, err
	}
	return s.CompareSet(ctx, set, entries), nil
}

// CompareSet compares entries against an already parsed baseline.
func (s *Service) CompareSet(ctx context.Context, baseline fingerprint.Set, entries []fingerprint.Entry) *CompareResult {
	current := s.Generate(ctx, entries)
	rep := reconcile.Build(baseline, current.Set)

	s.logger.Info("Comparison completed",
		zap.Int("total", rep.Summary.Total),
		zap.Int("unchanged", rep.Summary.Unchanged),
		zap.Int("modified", rep.Summary.Modified),
		zap.Int("new", rep.Summary.New),
		zap.Int("missing", rep.Summary.Missing))

	return &CompareResult{
		Results: rep.Results,
		Summary: rep.Summary,
		Errors:  current.Errors,
	}
}

// LoadBaseline downloads and parses the baseline CSV stored under key.
// Parsed baselines are cached for the configured TTL.
func (s *Service) LoadBaseline(ctx context.Context, key string) (fingerprint.Set, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	return s.baselines.GetOrLoad(ctx, key, func(ctx context.Context) (fingerprint.Set, error) {
		obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, s.baselineError(key, err)
		}
		defer obj.Close()

		// GetObject is lazy, a missing key only shows up on the first read
		data, err := io.ReadAll(obj)
		if err != nil {
			return nil, s.baselineError(key, err)
		}

		set, err := report.ReadFingerprints(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("baseline %s: %w", key, err)
		}

		s.logger.Debug("Baseline loaded", zap.String("key", key), zap.Int("entries", len(set)))
		return set, nil
	})
}

func (s *Service) baselineError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrBaselineNotFound, key)
	}
	return fmt.Errorf("failed to get baseline %s: %w", key, err)
}

// ObjectEntries lists the bucket objects under prefix as entries.
func (s *Service) ObjectEntries(ctx context.Context, prefix, extension string) ([]fingerprint.Entry, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	return sources.Objects(ctx, s.client, s.bucket, prefix, extension)
}

// TableEntries reads a database table as entries.
func (s *Service) TableEntries(ctx context.Context, table, nameColumn, contentColumn string) ([]fingerprint.Entry, error) {
	if s.db == nil {
		return nil, ErrDatabaseUnavailable
	}
	return sources.Rows(ctx, s.db, table, nameColumn, contentColumn)
}

// Export writes set as a fingerprint CSV to the bucket under key, creating the bucket if needed.
func (s *Service) Export(ctx context.Context, key string, set fingerprint.Set) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}

	var buf bytes.Buffer
	if err := report.WriteFingerprints(&buf, set); err != nil {
		return err
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, ""); err != nil {
		return err
	}

	size := int64(buf.Len())
	if _, err := s.client.PutObject(ctx, s.bucket, key, &buf, size, minio.PutObjectOptions{ContentType: "text/csv"}); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	s.baselines.Invalidate(key)

	s.logger.Info("Baseline exported", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int("entries", len(set)))
	return nil
}

func (s *Service) logFailures(failures []*fingerprint.ReadError) {
	for _, f := range failures {
		s.logger.Warn("Failed to read file", zap.String("name", f.Name), zap.Error(f.Err))
	}
}

func toFailures(failures []*fingerprint.ReadError) []Failure {
	out := make([]Failure, 0, len(failures))
	for _, f := range failures {
		out = append(out, Failure{Filename: f.Name, Error: f.Err.Error()})
	}
	return out
}
