package linker

import (
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// symlinkStrategy is the second file tier: works across volumes but
// needs symlink privilege on Windows.
type symlinkStrategy struct {
	fs types.FS
}

// NewSymlink returns the symlink file strategy
func NewSymlink(fsys types.FS) Strategy {
	return &symlinkStrategy{fs: fsys}
}

func (s *symlinkStrategy) Mechanism() types.Mechanism {
	return types.MechanismSymlink
}

func (s *symlinkStrategy) Satisfied(source, dest string) (bool, error) {
	if !isSymlink(s.fs, dest) {
		return false, nil
	}
	return linkPointsTo(s.fs, dest, source), nil
}

func (s *symlinkStrategy) Apply(source, dest string) Attempt {
	if err := s.fs.Symlink(source, dest); err != nil {
		return classify(err)
	}
	return applied()
}

func (s *symlinkStrategy) Verify(source, dest string) error {
	ok, err := s.Satisfied(source, dest)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrLinkFailed, "symlink at %s does not resolve to %s", dest, source)
	}
	return nil
}

func (s *symlinkStrategy) Rollback(dest string) error {
	err := s.fs.Remove(dest)
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
