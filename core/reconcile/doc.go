// Package reconcile compares two fingerprint sets and classifies every file name.
//
// A baseline set (the trusted, previously recorded state) is joined with a current
// set (a fresh snapshot) using a full outer join on the file name. Every name that
// appears in either set yields exactly one Record:
//
//   - unchanged: present in both sets with equal digests
//   - modified:  present in both sets with different digests
//   - new:       present only in the current set
//   - missing:   present only in the baseline set
//
// Absent digests are nil, never a placeholder value. Records are sorted by name so
// the same pair of inputs always produces the same output.
//
// # Architecture
//
// 1. Engine: builds the union of names and evaluates the status rules per name.
//
// 2. Summary: aggregate counts per status, used for logs and exit codes.
//
// 3. Cache: TTL-based cache with stampede protection for baselines that are
// fetched from remote storage and reused across requests.
//
// Validation of externally supplied baselines (missing columns, undecodable CSV)
// happens in package report before a set reaches this package.
//
// # Usage Example
//
//	records := reconcile.Reconcile(baseline, current)
//	summary := reconcile.Summarize(records)
//	if summary.Changed() {
//	    // react to drift
//	}
package reconcile
