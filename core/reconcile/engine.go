package reconcile

import (
	"sort"
	"strings"

	"file-integrity/core/fingerprint"
)

// Reconcile performs a full outer join of baseline and current on name.
// It returns one record per name in either set, sorted by name.
func Reconcile(baseline, current fingerprint.Set) []Record {
	union := buildUnion(baseline, current)

	results := make([]Record, 0, len(union))
	for name := range union {
		results = append(results, buildRecord(name, baseline, current))
	}

	// Sort results by name for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return results
}

// Build reconciles both sets and attaches the summary.
func Build(baseline, current fingerprint.Set) *Report {
	results := Reconcile(baseline, current)
	return &Report{
		Results: results,
		Summary: Summarize(results),
	}
}

// Summarize counts records per status.
func Summarize(records []Record) Summary {
	summary := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusUnchanged:
			summary.Unchanged++
		case StatusModified:
			summary.Modified++
		case StatusNew:
			summary.New++
		case StatusMissing:
			summary.Missing++
		}
	}
	return summary
}

// Classify applies the status rules to a pair of optional digests.
// Digests are compared case-insensitively.
func Classify(baselineDigest, currentDigest *string) Status {
	switch {
	case baselineDigest == nil:
		return StatusNew
	case currentDigest == nil:
		return StatusMissing
	case strings.EqualFold(*baselineDigest, *currentDigest):
		return StatusUnchanged
	default:
		return StatusModified
	}
}

// buildUnion creates the union of names from both sets.
func buildUnion(baseline, current fingerprint.Set) map[string]struct{} {
	union := make(map[string]struct{}, len(baseline)+len(current))
	for name := range baseline {
		union[name] = struct{}{}
	}
	for name := range current {
		union[name] = struct{}{}
	}
	return union
}

// buildRecord creates the record for a single name.
func buildRecord(name string, baseline, current fingerprint.Set) Record {
	record := Record{Name: name}

	if digest, ok := baseline.Get(name); ok {
		record.BaselineDigest = &digest
	}
	if digest, ok := current.Get(name); ok {
		record.CurrentDigest = &digest
	}

	record.Status = Classify(record.BaselineDigest, record.CurrentDigest)
	return record
}
