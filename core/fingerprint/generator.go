package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// EmptyDigest is the SHA-256 digest of zero bytes.
const EmptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// Hash returns the lowercase hex SHA-256 digest of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashReader reads r to the end and returns the digest of everything read.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// outcome is the hashing result of one entry, stored at its input index.
type outcome struct {
	digest string
	err    error
}

// Generate hashes every entry and returns the resulting set together with the
// read failures. Failures never abort the batch.
//
// Duplicate names resolve to the last successfully read entry in input order.
func Generate(ctx context.Context, entries []Entry, opts Options) (Set, []*ReadError) {
	outcomes := make([]outcome, len(entries))

	if opts.Workers > 1 {
		g := new(errgroup.Group)
		g.SetLimit(opts.Workers)
		for i := range entries {
			// Each goroutine writes only its own slot.
			g.Go(func() error {
				outcomes[i] = hashEntry(ctx, entries[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range entries {
			outcomes[i] = hashEntry(ctx, entries[i])
		}
	}

	set := make(Set, len(entries))
	var failures []*ReadError
	for i, o := range outcomes {
		if o.err != nil {
			failures = append(failures, &ReadError{Name: entries[i].Name, Index: i, Err: o.err})
			continue
		}
		set.Put(entries[i].Name, o.digest)
	}

	return set, failures
}

func hashEntry(ctx context.Context, e Entry) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}
	if e.Open == nil {
		return outcome{err: fmt.Errorf("no content source")}
	}

	rc, err := e.Open(ctx)
	if err != nil {
		return outcome{err: fmt.Errorf("open: %w", err)}
	}
	defer rc.Close()

	digest, err := HashReader(rc)
	if err != nil {
		return outcome{err: fmt.Errorf("read: %w", err)}
	}
	return outcome{digest: digest}
}
