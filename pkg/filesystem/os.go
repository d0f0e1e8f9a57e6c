package filesystem

import (
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

// SymlinkDir links a directory. On Windows a plain directory symlink needs
// either admin rights or developer mode, so when os.Symlink is refused we
// fall back to a junction, which needs neither. Junctions only support
// absolute local paths, which the planner guarantees.
func (o *osFS) SymlinkDir(oldname, newname string) error {
	err := os.Symlink(oldname, newname)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}

	cmd := exec.Command("cmd", "/c", "mklink", "/J", newname, oldname)
	out, mkErr := cmd.CombinedOutput()
	if mkErr != nil {
		return errors.Wrapf(mkErr, errors.ErrLinkFailed, "mklink /J %s %s: %s", newname, oldname, string(out))
	}
	return nil
}

func (o *osFS) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

func (o *osFS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

func (o *osFS) SameFile(name1, name2 string) (bool, error) {
	info1, err := os.Stat(name1)
	if err != nil {
		return false, err
	}
	info2, err := os.Stat(name2)
	if err != nil {
		return false, err
	}
	return os.SameFile(info1, info2), nil
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}
