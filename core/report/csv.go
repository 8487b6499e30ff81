package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"file-integrity/core/fingerprint"
	"file-integrity/core/reconcile"
)

// Column labels of the interchange formats.
const (
	ColumnFilename       = "filename"
	ColumnSHA256         = "sha256"
	ColumnSHA256Baseline = "sha256_baseline"
	ColumnSHA256New      = "sha256_new"
	ColumnStatus         = "status"
)

// Download file names used when reports are served to users.
const (
	BaselineFileName   = "baseline_checksums.csv"
	ComparisonFileName = "comparison_report.csv"
)

var (
	// ErrParseFailure means the input could not be decoded as CSV at all.
	ErrParseFailure = errors.New("input is not valid CSV")

	// ErrMalformedBaseline means the input is CSV but lacks the required columns or values.
	ErrMalformedBaseline = errors.New("malformed baseline")

	// ErrMalformedReport means a comparison CSV lacks the required columns or has an unknown status.
	ErrMalformedReport = errors.New("malformed comparison report")
)

const utf8BOM = "\ufeff"

// FingerprintHeader is the header row of a fingerprint CSV.
var FingerprintHeader = []string{ColumnFilename, ColumnSHA256}

// ComparisonHeader is the header row of a comparison CSV.
var ComparisonHeader = []string{ColumnFilename, ColumnSHA256Baseline, ColumnSHA256New, ColumnStatus}

// WriteFingerprints writes set as a fingerprint CSV, sorted by name.
func WriteFingerprints(w io.Writer, set fingerprint.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FingerprintHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range set.Records() {
		if err := cw.Write([]string{r.Name, r.Digest}); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFingerprints parses a fingerprint CSV. Only the filename and sha256 columns
// are used; duplicate names resolve to the last row.
func ReadFingerprints(r io.Reader) (fingerprint.Set, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrParseFailure)
	}

	index, err := columnIndex(rows[0], ErrMalformedBaseline, FingerprintHeader...)
	if err != nil {
		return nil, err
	}
	nameCol, digestCol := index[ColumnFilename], index[ColumnSHA256]

	set := make(fingerprint.Set, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		name := row[nameCol]
		digest := strings.ToLower(strings.TrimSpace(row[digestCol]))
		if name == "" {
			return nil, fmt.Errorf("%w: row %d has an empty %s", ErrMalformedBaseline, line, ColumnFilename)
		}
		if digest == "" {
			return nil, fmt.Errorf("%w: row %d (%q) has an empty %s", ErrMalformedBaseline, line, name, ColumnSHA256)
		}
		set.Put(name, digest)
	}

	return set, nil
}

// WriteComparison writes records as a comparison CSV. Absent digests are empty cells.
func WriteComparison(w io.Writer, records []reconcile.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ComparisonHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Name, deref(r.BaselineDigest), deref(r.CurrentDigest), string(r.Status)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadComparison parses a comparison CSV written by WriteComparison.
// Empty digest cells become nil.
func ReadComparison(r io.Reader) ([]reconcile.Record, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrParseFailure)
	}

	index, err := columnIndex(rows[0], ErrMalformedReport, ComparisonHeader...)
	if err != nil {
		return nil, err
	}

	records := make([]reconcile.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		status, err := reconcile.ParseStatus(row[index[ColumnStatus]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedReport, i+2, err)
		}
		records = append(records, reconcile.Record{
			Name:           row[index[ColumnFilename]],
			BaselineDigest: optional(row[index[ColumnSHA256Baseline]]),
			CurrentDigest:  optional(row[index[ColumnSHA256New]]),
			Status:         status,
		})
	}

	return records, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}

// columnIndex maps each required label to its position in header.
// The first occurrence of a label wins.
func columnIndex(header []string, malformed error, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(required))
	for i, label := range header {
		if _, seen := index[label]; !seen {
			index[label] = i
		}
	}

	var missing []string
	for _, label := range required {
		if _, ok := index[label]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s (required: %s)", malformed, strings.Join(missing, ", "), strings.Join(required, ", "))
	}
	return index, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
