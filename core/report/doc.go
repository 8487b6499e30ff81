// Package report reads and writes the CSV interchange formats.
//
// # Fingerprint CSV
//
// A baseline is stored as a header row followed by one row per file:
//
//	filename,sha256
//	a.txt,2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824
//
// # Comparison CSV
//
//	filename,sha256_baseline,sha256_new,status
//	a.txt,<digest>,<digest>,unchanged
//	c.txt,,<digest>,new
//
// An absent digest is an empty cell.
//
// # Reading Baselines
//
// ReadFingerprints validates the input before any comparison can use it:
//   - input that is not decodable CSV fails with ErrParseFailure
//   - a header without a filename or sha256 column fails with ErrMalformedBaseline
//   - a row with an empty filename or sha256 cell fails with ErrMalformedBaseline
//
// Extra columns are ignored, a leading UTF-8 byte order mark is skipped and digests
// are normalised to lowercase. File names are kept exactly as written.
package report
