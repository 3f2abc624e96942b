package engine

import "time"

// CreationTime is the best-effort creation timestamp of a file.
// Most Unix filesystems expose only ctime (inode change time), which is
// used as the creation stand-in; Valid is false when even that is
// unavailable and the caller should fall back to the modification time.
type CreationTime struct {
	Time  time.Time
	Valid bool
}

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access so the engine and executor can be tested
// against temp directories or fakes.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// ListFiles returns the direct regular-file children of a directory.
	// Subdirectories and special files are skipped; the scan is never
	// recursive.
	ListFiles(dir *Path) ([]*Path, error)

	// ExpandPath expands a leading "~" to the user's home directory and
	// resolves the result to an absolute path. The path need not exist.
	ExpandPath(rawPath string) (string, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Move moves a file, falling back to copy+remove across devices.
	Move(src, dst string) error

	// Copy copies a file's content and permissions.
	Copy(src, dst string) error

	// Trash moves a file into the platform's recoverable-deletion area
	// and returns the path it now lives at.
	Trash(src string) (string, error)

	// CreationTime extracts the creation timestamp for a resolved path.
	CreationTime(path *Path) CreationTime
}
