// Package manifest builds the ordered list of desired links: the
// built-in COnew junction set plus the repo's top-level sector files,
// or a user-supplied TOML manifest replacing the defaults.
package manifest

import (
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/logging"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/paths"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

var log = logging.GetLogger("manifest")

// Entry is one desired link in manifest form. Source is relative to the
// repo source tree, Dest to the sector-file directory. An empty Dest
// mirrors Source.
type Entry struct {
	Kind     string `toml:"kind"`
	Source   string `toml:"source"`
	Dest     string `toml:"dest"`
	Required bool   `toml:"required"`
}

// Manifest is a set of desired links before path resolution
type Manifest struct {
	Entries []Entry `toml:"entry"`
}

// Default builds the standard manifest: the include directory linked
// under each configured junction name, plus every top-level repo file
// whose extension is configured for linking.
func Default(fsys types.FS, cfg *config.Config, sourceMain string) (*Manifest, error) {
	m := &Manifest{}

	for _, name := range cfg.Link.JunctionNames {
		m.Entries = append(m.Entries, Entry{
			Kind:     string(types.EntryDirectory),
			Source:   cfg.Link.ConewPath,
			Dest:     filepath.Join(paths.IncludeDirName, name),
			Required: true,
		})
	}

	entries, err := fsys.ReadDir(sourceMain)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "listing repo source %s", sourceMain)
	}
	for _, entry := range entries {
		if entry.IsDir() || !linkableExt(cfg, entry.Name()) {
			continue
		}
		m.Entries = append(m.Entries, Entry{
			Kind:   string(types.EntryFile),
			Source: entry.Name(),
		})
	}

	log.Debug().Int("entries", len(m.Entries)).Str("source", sourceMain).Msg("Default manifest built")
	return m, nil
}

// Load reads a TOML manifest file
func Load(fsys types.FS, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "reading manifest %s", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "parsing manifest %s", path)
	}

	log.Debug().Int("entries", len(m.Entries)).Str("path", path).Msg("Manifest loaded")
	return &m, nil
}

// Resolve joins the manifest against the resolved source and sector-file
// directories, producing absolute link entries in manifest order
func (m *Manifest) Resolve(sourceMain, sectorfileDir string) ([]types.LinkEntry, error) {
	resolved := make([]types.LinkEntry, 0, len(m.Entries))

	for _, e := range m.Entries {
		var kind types.EntryKind
		switch e.Kind {
		case string(types.EntryDirectory):
			kind = types.EntryDirectory
		case string(types.EntryFile):
			kind = types.EntryFile
		default:
			return nil, errors.Newf(errors.ErrManifestLoad, "invalid entry kind %q for %s", e.Kind, e.Source)
		}

		if e.Source == "" {
			return nil, errors.New(errors.ErrManifestLoad, "manifest entry without source")
		}

		dest := e.Dest
		if dest == "" {
			dest = e.Source
		}

		resolved = append(resolved, types.LinkEntry{
			Kind:     kind,
			Source:   filepath.Join(sourceMain, e.Source),
			Dest:     filepath.Join(sectorfileDir, dest),
			Required: e.Required,
		})
	}

	return resolved, nil
}

// linkableExt reports whether name has one of the configured extensions
func linkableExt(cfg *config.Config, name string) bool {
	ext := filepath.Ext(name)
	for _, want := range cfg.Link.FileExtensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
