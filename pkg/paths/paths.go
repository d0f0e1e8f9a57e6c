// Package paths locates the Aurora sector-file directory and the repo
// source tree that feed the link plan.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/logging"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// sectorExt marks a directory as sector-file content during discovery
const sectorExt = ".isc"

// IncludeDirName is the include directory Aurora reads link targets from
const IncludeDirName = "Include"

// ResolveAuroraRoot maps an --aurora value to the directory discovery
// starts from. Pointing at Aurora.exe is allowed and resolves to its
// directory.
func ResolveAuroraRoot(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".exe") {
		return filepath.Dir(path)
	}
	return path
}

// FindSectorfileDir locates the sector-file directory under root.
// Order: root itself when it already holds sector-file content; a
// well-known child name (by content, or by name alone when configured);
// finally the first directory below root that holds content.
func FindSectorfileDir(fsys types.FS, root string, disc config.DiscoveryConfig) (string, error) {
	logger := logging.GetLogger("paths")

	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrSectorfileNotFound, "sector-file folder not found under %s", root)
	}

	if hasSectorContent(fsys, root) {
		return root, nil
	}

	for _, name := range disc.SectorfileNames {
		cand := filepath.Join(root, name)
		info, err := fsys.Stat(cand)
		if err != nil || !info.IsDir() {
			continue
		}
		if hasSectorContent(fsys, cand) {
			return cand, nil
		}
		if disc.AcceptNamedEmpty {
			logger.Info().Str("path", cand).Msg("Accepting folder by name")
			return cand, nil
		}
	}

	if found := walkForContent(fsys, root); found != "" {
		return found, nil
	}

	return "", errors.Newf(errors.ErrSectorfileNotFound, "sector-file folder not found under %s", root)
}

// ResolveRepoSource maps the repo root to the directory holding the main
// sector-file tree: the repo itself when it carries an Include directory,
// otherwise the configured main subdirectory.
func ResolveRepoSource(fsys types.FS, repo string, disc config.DiscoveryConfig) (string, error) {
	if isDir(fsys, repo) && isDir(fsys, filepath.Join(repo, IncludeDirName)) {
		return repo, nil
	}

	main := filepath.Join(repo, disc.RepoMainDir)
	if isDir(fsys, main) {
		return main, nil
	}

	return "", errors.Newf(errors.ErrRepoNotFound, "repository %s not found at %s", disc.RepoMainDir, repo)
}

// hasSectorContent reports whether dir holds an Include directory or any
// sector file below it
func hasSectorContent(fsys types.FS, dir string) bool {
	if isDir(fsys, filepath.Join(dir, IncludeDirName)) {
		return true
	}
	return hasSectorFileBelow(fsys, dir)
}

// hasSectorFileBelow reports whether any .isc file exists under dir.
// Links are not followed.
func hasSectorFileBelow(fsys types.FS, dir string) bool {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if hasSectorFileBelow(fsys, filepath.Join(dir, entry.Name())) {
				return true
			}
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), sectorExt) {
			return true
		}
	}
	return false
}

// walkForContent returns the first directory under root, top-down in
// name order, that holds an Include directory or a sector file
func walkForContent(fsys types.FS, root string) string {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return ""
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if entry.Name() == IncludeDirName {
				return root
			}
			subdirs = append(subdirs, entry.Name())
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), sectorExt) {
			return root
		}
	}

	for _, name := range subdirs {
		if found := walkForContent(fsys, filepath.Join(root, name)); found != "" {
			return found
		}
	}

	return ""
}

func isDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
