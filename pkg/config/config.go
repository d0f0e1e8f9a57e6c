// Package config loads sectorlink configuration: embedded defaults,
// an optional sectorlink.toml, and SECTORLINK_* environment overrides,
// highest last.
package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvConfigFile overrides the config file location
const EnvConfigFile = "SECTORLINK_CONFIG"

// Config is the resolved sectorlink configuration
type Config struct {
	Link      LinkConfig      `koanf:"link"`
	Discovery DiscoveryConfig `koanf:"discovery"`
}

// LinkConfig controls what the default manifest links and how
type LinkConfig struct {
	// FileExtensions are the top-level repo file types linked individually
	FileExtensions []string `koanf:"file_extensions"`

	// JunctionNames are the directory names the include dir is linked under
	JunctionNames []string `koanf:"junction_names"`

	// ConewPath is the include directory subpath inside the repo source
	ConewPath string `koanf:"conew_path"`

	// CreateParents allows creating missing destination parent directories
	CreateParents bool `koanf:"create_parents"`
}

// DiscoveryConfig controls how the sector-file directory is located
type DiscoveryConfig struct {
	// SectorfileNames are well-known child directory names under the
	// Aurora root, checked in order
	SectorfileNames []string `koanf:"sectorfile_names"`

	// RepoMainDir is the repo subdirectory holding the main tree
	RepoMainDir string `koanf:"repo_main_dir"`

	// AcceptNamedEmpty accepts a well-known name with no content yet
	AcceptNamedEmpty bool `koanf:"accept_named_empty"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load resolves the configuration from defaults, file, and environment
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith resolves the configuration and applies overrides on top.
// Overrides use dotted keys, e.g. "discovery.accept_named_empty".
func LoadWith(overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "loading built-in defaults")
	}

	// 2. First config file found, if any
	for _, path := range configFilePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading config file %s", path)
		}
		break
	}

	// 3. Environment variables. SECTORLINK_LINK_CREATE_PARENTS maps to
	// link.create_parents: only the first underscore becomes a separator
	// because key names themselves contain underscores.
	if err := k.Load(env.Provider("SECTORLINK_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SECTORLINK_"))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment overrides")
	}

	// 4. Programmatic overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "applying overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling configuration")
	}

	return &cfg, nil
}

// configFilePaths returns candidate config file locations in priority order
func configFilePaths() []string {
	var paths []string
	if explicit := os.Getenv(EnvConfigFile); explicit != "" {
		paths = append(paths, explicit)
	}
	paths = append(paths,
		filepath.Join(xdg.ConfigHome, "sectorlink", "sectorlink.toml"),
		"sectorlink.toml",
	)
	return paths
}
