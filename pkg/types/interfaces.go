package types

import (
	"io/fs"
)

// FS is the filesystem interface required for sectorlink operations.
// All engine code goes through it so tests run against an in-memory
// implementation with fault injection.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Link operations. SymlinkDir creates a directory junction on Windows
	// and a directory symlink elsewhere. SameFile reports whether two paths
	// resolve to the same underlying file (hardlink identity).
	Symlink(oldname, newname string) error
	SymlinkDir(oldname, newname string) error
	Link(oldname, newname string) error
	Readlink(name string) (string, error)
	SameFile(name1, name2 string) (bool, error)

	// Remove is non-recursive: removing a populated directory must fail.
	// The engine never removes trees.
	Remove(name string) error
}
