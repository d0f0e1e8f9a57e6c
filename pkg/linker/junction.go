package linker

import (
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// junctionStrategy links whole directories. On Windows the filesystem
// layer creates a junction, elsewhere a directory symlink; either way
// Aurora sees the repo directory under the expected name.
type junctionStrategy struct {
	fs types.FS
}

// NewJunction returns the directory link strategy
func NewJunction(fsys types.FS) Strategy {
	return &junctionStrategy{fs: fsys}
}

func (s *junctionStrategy) Mechanism() types.Mechanism {
	return types.MechanismJunction
}

func (s *junctionStrategy) Satisfied(source, dest string) (bool, error) {
	if !isSymlink(s.fs, dest) {
		return false, nil
	}
	return linkPointsTo(s.fs, dest, source), nil
}

func (s *junctionStrategy) Apply(source, dest string) Attempt {
	if err := s.fs.SymlinkDir(source, dest); err != nil {
		return classify(err)
	}
	return applied()
}

func (s *junctionStrategy) Verify(source, dest string) error {
	ok, err := s.Satisfied(source, dest)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrLinkFailed, "junction at %s does not resolve to %s", dest, source)
	}
	return nil
}

func (s *junctionStrategy) Rollback(dest string) error {
	err := s.fs.Remove(dest)
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
