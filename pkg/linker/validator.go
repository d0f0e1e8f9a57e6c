package linker

import (
	"path/filepath"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// DestState classifies what currently occupies a destination path
type DestState int

const (
	// DestMissing means nothing exists at the destination
	DestMissing DestState = iota

	// DestLink means a symlink or junction occupies the destination
	DestLink

	// DestFile means a regular file occupies the destination
	DestFile

	// DestEmptyDir means an empty real directory occupies the destination
	DestEmptyDir

	// DestPopulatedDir means a real directory with content occupies the
	// destination. The engine never removes these.
	DestPopulatedDir
)

// Validation carries the precondition classification for one entry
type Validation struct {
	DestState DestState
}

// Validator checks entry preconditions: the source must exist and match
// the entry kind, the destination parent must exist or be creatable.
type Validator struct {
	fs            types.FS
	createParents bool
}

// NewValidator returns a validator. createParents allows creating
// missing destination parent directories (the sector-file Include dir
// on a fresh Aurora install).
func NewValidator(fsys types.FS, createParents bool) *Validator {
	return &Validator{fs: fsys, createParents: createParents}
}

// Validate checks entry preconditions and classifies the destination.
// In dry-run mode missing parents are reported as creatable instead of
// being created.
func (v *Validator) Validate(entry types.LinkEntry, dryRun bool) (*Validation, error) {
	info, err := v.fs.Stat(entry.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidSource, "source %s", entry.Source)
	}
	if entry.Kind == types.EntryDirectory && !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidSource, "source %s is not a directory", entry.Source)
	}
	if entry.Kind == types.EntryFile && info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidSource, "source %s is a directory", entry.Source)
	}

	if err := v.ensureParent(entry.Dest, dryRun); err != nil {
		return nil, err
	}

	state, err := v.classifyDest(entry.Dest)
	if err != nil {
		return nil, err
	}

	return &Validation{DestState: state}, nil
}

// ensureParent makes sure the destination parent directory exists
func (v *Validator) ensureParent(dest string, dryRun bool) error {
	parent := filepath.Dir(dest)

	info, err := v.fs.Stat(parent)
	if err == nil {
		if !info.IsDir() {
			return errors.Newf(errors.ErrDirCreate, "destination parent %s is not a directory", parent)
		}
		return nil
	}
	if !isNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "checking destination parent %s", parent)
	}

	if !v.createParents {
		return errors.Newf(errors.ErrDirCreate, "destination parent %s does not exist", parent)
	}
	if dryRun {
		return nil
	}
	if err := v.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "creating destination parent %s", parent)
	}
	return nil
}

// classifyDest inspects the destination without following links
func (v *Validator) classifyDest(dest string) (DestState, error) {
	info, err := v.fs.Lstat(dest)
	if err != nil {
		if isNotExist(err) {
			return DestMissing, nil
		}
		return DestMissing, errors.Wrapf(err, errors.ErrFileAccess, "inspecting destination %s", dest)
	}

	if !info.IsDir() {
		if isSymlink(v.fs, dest) {
			return DestLink, nil
		}
		return DestFile, nil
	}

	entries, err := v.fs.ReadDir(dest)
	if err != nil {
		return DestMissing, errors.Wrapf(err, errors.ErrFileAccess, "inspecting destination %s", dest)
	}
	if len(entries) > 0 {
		return DestPopulatedDir, nil
	}
	return DestEmptyDir, nil
}
