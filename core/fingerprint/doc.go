// Package fingerprint computes SHA-256 content fingerprints for named byte sources.
//
// A fingerprint is the lowercase hex SHA-256 digest of the complete content of a
// source. The package turns a sequence of named sources into a Set, which maps
// each name to its digest.
//
// # Entries
//
// Each Entry pairs a name with an Opener. The opener is called exactly once and the
// returned stream is read to the end in a single pass. Helpers exist for in-memory
// content (BytesEntry), already open readers (ReaderEntry) and local files (FileEntry).
//
// # Read Failures
//
// A source that cannot be opened or fully read produces a *ReadError for that entry.
// The entry is left out of the resulting Set and the remaining entries are still
// processed, so callers receive a partial Set plus the list of failures and decide
// themselves whether a partial baseline is acceptable.
//
// # Duplicate Names
//
// When two entries share a name, the entry that comes later in the input wins. The
// rule is applied over input order after hashing, so it holds even when entries are
// hashed concurrently (Options.Workers > 1) and finish in a different order. An entry
// that fails to read never replaces a digest that was already recorded.
//
// # Usage
//
//	set, failures := fingerprint.Generate(ctx, []fingerprint.Entry{
//	    fingerprint.BytesEntry("a.txt", []byte("hello")),
//	    fingerprint.FileEntry("b.txt", "/data/b.txt"),
//	}, fingerprint.Options{Workers: 4})
package fingerprint
