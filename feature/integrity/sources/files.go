package sources

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"

	"file-integrity/core/fingerprint"
)

// Files returns one entry per path. Entries are named by the base name of the path,
// or by the path exactly as given when fullPath is set.
func Files(paths []string, fullPath bool) []fingerprint.Entry {
	entries := make([]fingerprint.Entry, 0, len(paths))
	for _, p := range paths {
		name := p
		if !fullPath {
			name = filepath.Base(p)
		}
		entries = append(entries, fingerprint.FileEntry(name, p))
	}
	return entries
}

// Multipart returns one entry per uploaded file, named by the client supplied file name.
func Multipart(files []*multipart.FileHeader) []fingerprint.Entry {
	entries := make([]fingerprint.Entry, 0, len(files))
	for _, fh := range files {
		entries = append(entries, fingerprint.Entry{
			Name: fh.Filename,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return entries
}
