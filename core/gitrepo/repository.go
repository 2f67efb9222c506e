package gitrepo

import "context"

// Repository defines the narrow interface the stores use to talk to a
// git-backed working directory. Paths are always relative to the working
// directory root.
type Repository interface {
	// Pull fetches and integrates the latest state from the remote.
	Pull(ctx context.Context) error
	// ReadFile returns the contents of a file in the working directory.
	// A missing file surfaces fs.ErrNotExist through the error chain.
	ReadFile(name string) ([]byte, error)
	// WriteFile writes a file atomically, replacing any previous content.
	WriteFile(name string, data []byte) error
	// RemoveFile deletes a file from the working directory.
	RemoveFile(name string) error
	// Exists reports whether a file is present in the working directory.
	Exists(name string) bool
	// List returns the names of all files with the given extension,
	// non-recursively, in no particular order.
	List(ext string) ([]string, error)
	// CommitAndPushIfDirty stages everything, and if the working tree has
	// pending changes, commits with the given message and pushes to the
	// remote. It reports whether a commit was made.
	CommitAndPushIfDirty(ctx context.Context, message string) (bool, error)
}
