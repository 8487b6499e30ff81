// Package integrity implements the file integrity feature: generating SHA-256
// baselines and comparing current content against them.
//
// # Modes
//
//   - Generate: fingerprint a batch of files and return the baseline, as JSON or
//     as the downloadable baseline_checksums.csv.
//   - Compare: fingerprint a batch and reconcile it against a baseline CSV. Every
//     name of either side is reported once as unchanged, modified, new or missing,
//     together with a per status summary. The CSV form is comparison_report.csv.
//
// A baseline that cannot be parsed, or lacks the filename and sha256 columns, is
// rejected before any file is hashed. Files that cannot be read are listed in the
// errors of the result and never abort the batch.
//
// # Sources
//
// Content comes from multipart uploads, bucket objects under a prefix, or the rows
// of a database table (see the sources subpackage). Stored baselines are read from
// the bucket under the configured prefix and cached for a limited time.
//
// # Endpoints
//
//   - POST /integrity/fingerprints: fingerprint the uploaded files
//   - POST /integrity/compare: compare uploaded files with an uploaded baseline
//   - POST /integrity/compare/:name: compare uploaded files with a stored baseline
//   - GET /integrity/objects: fingerprint bucket objects
//   - GET /integrity/tables/:table: fingerprint table rows
//
// The CLI uses the same Service, plus Watcher to re-run a comparison when files change.
package integrity
