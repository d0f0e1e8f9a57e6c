package linker

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// AttemptStatus classifies one strategy application
type AttemptStatus int

const (
	// AttemptApplied means the link was established
	AttemptApplied AttemptStatus = iota

	// AttemptNotSupported means the mechanism cannot work here
	// (cross-volume, missing privilege, unsupported operation) and the
	// next tier should take over
	AttemptNotSupported

	// AttemptFatal means the entry fails and the chain stops
	AttemptFatal
)

// Attempt is the tagged outcome of Strategy.Apply
type Attempt struct {
	Status AttemptStatus
	Err    error
}

func applied() Attempt               { return Attempt{Status: AttemptApplied} }
func notSupported(err error) Attempt { return Attempt{Status: AttemptNotSupported, Err: err} }
func fatal(err error) Attempt        { return Attempt{Status: AttemptFatal, Err: err} }

// Strategy is one link mechanism. Apply never removes anything: occupied
// destinations are the executor's concern.
type Strategy interface {
	// Mechanism identifies the strategy in outcomes
	Mechanism() types.Mechanism

	// Satisfied reports whether dest already is the desired link
	Satisfied(source, dest string) (bool, error)

	// Apply attempts to establish the link at a free dest
	Apply(source, dest string) Attempt

	// Verify checks the link right after Apply
	Verify(source, dest string) error

	// Rollback removes a dest that failed verification
	Rollback(dest string) error
}

// DirectoryStrategies returns the mechanism chain for directory entries
func DirectoryStrategies(fsys types.FS) []Strategy {
	return []Strategy{NewJunction(fsys)}
}

// FileStrategies returns the mechanism chain for file entries, in
// priority order: hardlink, symlink, degraded copy
func FileStrategies(fsys types.FS) []Strategy {
	return []Strategy{NewHardlink(fsys), NewSymlink(fsys), NewCopy(fsys)}
}

// Windows error numbers that have no portable syscall constant
const (
	winErrNotSameDevice    = syscall.Errno(17)   // ERROR_NOT_SAME_DEVICE
	winErrPrivilegeNotHeld = syscall.Errno(1314) // ERROR_PRIVILEGE_NOT_HELD
)

// classify maps an Apply error to an Attempt: expected progressions
// (cross-volume target, missing privilege, unsupported operation) hand
// over to the next tier, anything else is fatal for the entry
func classify(err error) Attempt {
	if expectedProgression(err) {
		return notSupported(err)
	}
	return fatal(err)
}

func expectedProgression(err error) bool {
	if stderrors.Is(err, os.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if !stderrors.As(err, &errno) {
		return false
	}

	switch errno {
	case syscall.EXDEV, syscall.EPERM, syscall.EACCES, syscall.ENOTSUP, syscall.EMLINK, syscall.ENOSYS:
		return true
	}

	if runtime.GOOS == "windows" {
		switch errno {
		case winErrNotSameDevice, winErrPrivilegeNotHeld:
			return true
		}
	}

	return false
}

// samePath compares two cleaned paths, folding case on platforms whose
// filesystems do
func samePath(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// linkPointsTo reports whether the link at dest resolves to source
func linkPointsTo(fsys types.FS, dest, source string) bool {
	target, err := fsys.Readlink(dest)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(dest), target)
	}
	return samePath(target, source)
}

// isSymlink reports whether path is a link without following it
func isSymlink(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func isNotExist(err error) bool {
	return stderrors.Is(err, os.ErrNotExist)
}
