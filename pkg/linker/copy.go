package linker

import (
	"bytes"
	"io/fs"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// copyStrategy is the last file tier: a byte copy preserving the source
// mode. It succeeds where no link mechanism can, but the destination
// stops tracking source edits, so outcomes carry the copy mechanism and
// callers surface the caveat.
type copyStrategy struct {
	fs types.FS
}

// CopyCaveat is the message attached to degraded copy outcomes
const CopyCaveat = "copied, not linked: repo edits will not show up until the next install"

// NewCopy returns the copy fallback strategy
func NewCopy(fsys types.FS) Strategy {
	return &copyStrategy{fs: fsys}
}

func (s *copyStrategy) Mechanism() types.Mechanism {
	return types.MechanismCopy
}

func (s *copyStrategy) Satisfied(source, dest string) (bool, error) {
	info, err := s.fs.Lstat(dest)
	if err != nil || !info.Mode().IsRegular() {
		return false, nil
	}

	srcData, err := s.fs.ReadFile(source)
	if err != nil {
		return false, err
	}
	dstData, err := s.fs.ReadFile(dest)
	if err != nil {
		return false, err
	}

	return bytes.Equal(srcData, dstData), nil
}

func (s *copyStrategy) Apply(source, dest string) Attempt {
	info, err := s.fs.Stat(source)
	if err != nil {
		return fatal(errors.Wrapf(err, errors.ErrFileCopy, "reading source %s", source))
	}

	data, err := s.fs.ReadFile(source)
	if err != nil {
		return fatal(errors.Wrapf(err, errors.ErrFileCopy, "reading source %s", source))
	}

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = fs.FileMode(0644)
	}
	if err := s.fs.WriteFile(dest, data, mode); err != nil {
		return fatal(errors.Wrapf(err, errors.ErrFileCopy, "writing %s", dest))
	}

	return applied()
}

func (s *copyStrategy) Verify(source, dest string) error {
	ok, err := s.Satisfied(source, dest)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrFileCopy, "%s does not match %s after copy", dest, source)
	}
	return nil
}

func (s *copyStrategy) Rollback(dest string) error {
	err := s.fs.Remove(dest)
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
