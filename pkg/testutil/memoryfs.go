package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Hardlinked paths
// share a single node, so SameFile reports true for them and writes
// through one path are visible through the other.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	umask os.FileMode

	// Error injection: op -> path -> error. The path "*" matches any
	// path for that op.
	opErrors map[string]map[string]error
}

// fileNode represents a file, directory, or link in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem with an empty root
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:    map[string]*fileNode{"/": root},
		umask:    0022,
		opErrors: make(map[string]map[string]error),
	}
}

// WithError configures the filesystem to return err for any operation
// touching path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	return m.WithOpError("*", path, err)
}

// WithOpError configures the filesystem to return err for a specific
// operation (e.g. "link", "symlink", "symlinkdir", "writefile") on path.
// Pass "*" as path to fail that operation everywhere, which is how tests
// simulate a cross-volume target or a process without link privilege.
func (m *MemoryFS) WithOpError(op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path != "*" {
		path = filepath.Clean(path)
	}
	if m.opErrors[op] == nil {
		m.opErrors[op] = make(map[string]error)
	}
	m.opErrors[op][path] = err
	return m
}

// injectedError returns a configured error for op on path, if any
func (m *MemoryFS) injectedError(op, path string) error {
	path = filepath.Clean(path)
	for _, key := range []string{op, "*"} {
		if paths, ok := m.opErrors[key]; ok {
			if err, ok := paths[path]; ok {
				return err
			}
			if err, ok := paths["*"]; ok {
				return err
			}
		}
	}
	return nil
}

// getNode retrieves the node at path without following links
func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = filepath.Clean(path)

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// resolve follows a link chain to the target node
func (m *MemoryFS) resolve(path string) (*fileNode, error) {
	node, err := m.getNode(path)
	if err != nil {
		return nil, err
	}

	for depth := 0; node.isLink; depth++ {
		if depth > 8 {
			return nil, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
		}
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
		node, err = m.getNode(path)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// getParentAndName splits a path into parent directory node and filename
func (m *MemoryFS) getParentAndName(path string) (parent *fileNode, name string, err error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	name = filepath.Base(path)

	parent, err = m.getNode(dir)
	if err != nil {
		return nil, "", err
	}

	if !parent.isDir {
		return nil, "", &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}

	return parent, name, nil
}

// Stat returns file info, following links
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("stat", name); err != nil {
		return nil, err
	}

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following links
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("lstat", name); err != nil {
		return nil, err
	}

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// ReadFile reads the entire file content, following links
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("readfile", name); err != nil {
		return nil, err
	}

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary. An existing
// file's node is updated in place so hardlinked paths see the new content.
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("writefile", name); err != nil {
		return err
	}

	path := filepath.Clean(name)

	if existing, err := m.resolve(path); err == nil {
		if existing.isDir {
			return &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
		}
		existing.content = make([]byte, len(data))
		copy(existing.content, data)
		existing.modTime = time.Now()
		return nil
	}

	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:    filename,
		mode:    perm &^ m.umask,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("mkdirall", path); err != nil {
		return err
	}

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = filepath.Clean(path)

	if node, err := m.getNode(path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	current := "/"
	currentNode := m.files["/"]

	for _, part := range splitPath(path) {
		next := filepath.Join(current, part)

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}

		currentNode.children[part] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return nil
}

// ReadDir reads a directory and returns its entries sorted by name
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("readdir", name); err != nil {
		return nil, err
	}

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// Symlink creates a symbolic link to a file
func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("symlink", newname); err != nil {
		return err
	}

	return m.makeLink(oldname, newname)
}

// SymlinkDir creates a directory link. In memory it behaves exactly like
// Symlink; it is a separate operation so tests can fail junction creation
// independently of file symlinks.
func (m *MemoryFS) SymlinkDir(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("symlinkdir", newname); err != nil {
		return err
	}

	return m.makeLink(oldname, newname)
}

func (m *MemoryFS) makeLink(oldname, newname string) error {
	linkPath := filepath.Clean(newname)

	if _, err := m.getNode(linkPath); err == nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}

	parent, filename, err := m.getParentAndName(linkPath)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: oldname,
	}

	parent.children[filename] = node
	m.files[linkPath] = node

	return nil
}

// Link creates a hardlink: both paths share one node afterwards
func (m *MemoryFS) Link(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("link", newname); err != nil {
		return err
	}

	target, err := m.resolve(oldname)
	if err != nil {
		return err
	}
	if target.isDir {
		return &fs.PathError{Op: "link", Path: oldname, Err: errors.New("is a directory")}
	}

	linkPath := filepath.Clean(newname)
	if _, err := m.getNode(linkPath); err == nil {
		return &fs.PathError{Op: "link", Path: newname, Err: fs.ErrExist}
	}

	parent, filename, err := m.getParentAndName(linkPath)
	if err != nil {
		return err
	}

	parent.children[filename] = target
	m.files[linkPath] = target

	return nil
}

// Readlink returns the destination of a link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("readlink", name); err != nil {
		return "", err
	}

	node, err := m.getNode(name)
	if err != nil {
		return "", err
	}

	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}

	return node.linkDest, nil
}

// SameFile reports whether two paths resolve to the same node
func (m *MemoryFS) SameFile(name1, name2 string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injectedError("samefile", name1); err != nil {
		return false, err
	}

	node1, err := m.resolve(name1)
	if err != nil {
		return false, err
	}
	node2, err := m.resolve(name2)
	if err != nil {
		return false, err
	}

	return node1 == node2, nil
}

// Remove removes a file, link, or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injectedError("remove", name); err != nil {
		return err
	}

	path := filepath.Clean(name)

	node, err := m.getNode(path)
	if err != nil {
		return err
	}

	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}

	delete(parent.children, filename)
	delete(m.files, path)

	return nil
}

// Exists reports whether a path exists, for test assertions
func (m *MemoryFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.getNode(path)
	return err == nil
}

// splitPath breaks an absolute path into its segments
func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
