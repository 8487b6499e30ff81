// Package sources turns the places content can come from into fingerprint entries.
//
// Every function returns []fingerprint.Entry whose openers are only invoked by the
// generator, so listing a large bucket or directory does not read any content yet.
//
//   - Files: local paths, named by base name or by the path as given.
//   - Multipart: files of an HTTP multipart upload.
//   - Objects: bucket objects under a prefix, named relative to the prefix.
//   - Rows: a name column and a content column of a database table.
package sources
