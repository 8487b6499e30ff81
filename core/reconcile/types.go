package reconcile

import (
	"fmt"
)

// Status is the classification of a single name after reconciliation.
type Status string

const (
	// StatusUnchanged means both digests are present and equal.
	StatusUnchanged Status = "unchanged"
	// StatusModified means both digests are present and differ.
	StatusModified Status = "modified"
	// StatusNew means the name is absent from the baseline.
	StatusNew Status = "new"
	// StatusMissing means the name is absent from the current set.
	StatusMissing Status = "missing"
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusUnchanged, StatusModified, StatusNew, StatusMissing}

// ParseStatus converts the literal status string back into a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Record represents the reconciliation output for a single name.
type Record struct {
	// Name is the file name shared by both sets.
	Name string `json:"filename"`

	// BaselineDigest is the digest recorded in the baseline, nil if absent.
	BaselineDigest *string `json:"sha256_baseline"`

	// CurrentDigest is the digest of the current snapshot, nil if absent.
	CurrentDigest *string `json:"sha256_new"`

	// Status is the classification derived from the two digests.
	Status Status `json:"status"`
}

// Summary provides aggregate counts for a reconciliation.
type Summary struct {
	// Total is the number of distinct names in either set.
	Total int `json:"total"`

	// Unchanged counts names whose digests match.
	Unchanged int `json:"unchanged"`

	// Modified counts names whose digests differ.
	Modified int `json:"modified"`

	// New counts names absent from the baseline.
	New int `json:"new"`

	// Missing counts names absent from the current set.
	Missing int `json:"missing"`
}

// Changed reports whether any name is not unchanged.
func (s Summary) Changed() bool {
	return s.Modified > 0 || s.New > 0 || s.Missing > 0
}

// Report bundles records with their summary.
type Report struct {
	// Results contains one record per name, sorted by name.
	Results []Record `json:"results"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}
