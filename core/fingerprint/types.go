package fingerprint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
)

// DigestLength is the length of a hex encoded SHA-256 digest.
const DigestLength = 64

// Record is a single name/digest pair.
type Record struct {
	// Name is the caller supplied label of the source (usually a file name).
	// It is treated as an opaque string.
	Name string `json:"filename"`

	// Digest is the lowercase hex SHA-256 of the full content.
	Digest string `json:"sha256"`
}

// Set maps names to digests. Names are unique within a set.
type Set map[string]string

// Put records a digest for name, replacing any previous digest for the same name.
func (s Set) Put(name, digest string) {
	s[name] = digest
}

// Get returns the digest recorded for name.
func (s Set) Get(name string) (string, bool) {
	digest, ok := s[name]
	return digest, ok
}

// Names returns all names in the set, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the set as records sorted by name.
func (s Set) Records() []Record {
	records := make([]Record, 0, len(s))
	for _, name := range s.Names() {
		records = append(records, Record{Name: name, Digest: s[name]})
	}
	return records
}

// FromRecords builds a set from records. Later records overwrite earlier ones
// with the same name.
func FromRecords(records []Record) Set {
	set := make(Set, len(records))
	for _, r := range records {
		set.Put(r.Name, r.Digest)
	}
	return set
}

// Opener opens the byte stream of an entry. It is called at most once per entry.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Entry is a named byte source.
type Entry struct {
	Name string
	Open Opener
}

// BytesEntry returns an entry backed by an in-memory buffer.
func BytesEntry(name string, content []byte) Entry {
	return Entry{
		Name: name,
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// ReaderEntry returns an entry backed by an already open reader.
// If r implements io.Closer it is closed after reading.
func ReaderEntry(name string, r io.Reader) Entry {
	return Entry{
		Name: name,
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			if rc, ok := r.(io.ReadCloser); ok {
				return rc, nil
			}
			return io.NopCloser(r), nil
		},
	}
}

// FileEntry returns an entry that opens the local file at path when read.
func FileEntry(name, path string) Entry {
	return Entry{
		Name: name,
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// ReadError reports a source that could not be fully consumed.
type ReadError struct {
	// Name is the name of the failing entry.
	Name string `json:"filename"`

	// Index is the position of the entry in the input sequence.
	Index int `json:"index"`

	// Err is the underlying cause.
	Err error `json:"-"`
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Options controls Generate.
type Options struct {
	// Workers is the number of entries hashed concurrently.
	// Values below 2 hash sequentially.
	Workers int
}
