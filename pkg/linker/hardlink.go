package linker

import (
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// hardlinkStrategy is the preferred file mechanism: the destination is
// the same file as the source, so edits are live and Aurora needs no
// symlink support. It cannot cross volumes.
type hardlinkStrategy struct {
	fs types.FS
}

// NewHardlink returns the hardlink file strategy
func NewHardlink(fsys types.FS) Strategy {
	return &hardlinkStrategy{fs: fsys}
}

func (s *hardlinkStrategy) Mechanism() types.Mechanism {
	return types.MechanismHardlink
}

func (s *hardlinkStrategy) Satisfied(source, dest string) (bool, error) {
	// A symlinked dest resolves to the source file too; leave it to the
	// symlink tier so the outcome names the actual mechanism
	if _, err := s.fs.Lstat(dest); err != nil {
		return false, nil
	}
	if isSymlink(s.fs, dest) {
		return false, nil
	}
	return s.fs.SameFile(source, dest)
}

func (s *hardlinkStrategy) Apply(source, dest string) Attempt {
	if err := s.fs.Link(source, dest); err != nil {
		return classify(err)
	}
	return applied()
}

func (s *hardlinkStrategy) Verify(source, dest string) error {
	ok, err := s.Satisfied(source, dest)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrLinkFailed, "%s is not the same file as %s", dest, source)
	}
	return nil
}

func (s *hardlinkStrategy) Rollback(dest string) error {
	err := s.fs.Remove(dest)
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
