// Package fs abstracts the file operations behind atomic grid writes.
//
// WriteFile replaces a file through a temporary sibling and a rename, so
// readers see either the old or the new grid. LocalFS is the production
// FileSystem; FaultyFS injects write, sync and rename failures in tests.
package fs
