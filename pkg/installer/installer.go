// Package installer is the engine entry point: it wires discovery,
// manifest resolution, planning, and execution into a single run.
package installer

import (
	"path/filepath"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/linker"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/logging"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/manifest"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/paths"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/planner"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

var log = logging.GetLogger("installer")

// Options parameterize one install run
type Options struct {
	// AuroraPath is the Aurora install directory, or the Aurora.exe path
	AuroraPath string

	// RepoPath is the sector-file repository checkout
	RepoPath string

	// ManifestPath optionally replaces the built-in manifest with a TOML file
	ManifestPath string

	// Force replaces occupied destinations
	Force bool

	// DryRun reports what would happen without touching the filesystem
	DryRun bool

	// Observe receives each link outcome as it is produced
	Observe types.ObserveFunc

	// Progress receives -1 when the run starts, then 100 on completion
	Progress types.ProgressFunc
}

// Result is everything one run produced. There is no global last-run
// state; callers keep what they need from here.
type Result struct {
	// SectorfileDir is the discovered link destination root
	SectorfileDir string

	// SourceMain is the resolved repo source root
	SourceMain string

	// Plan is the validated, ordered link plan
	Plan *types.LinkPlan

	// Summary aggregates the outcomes. On an aborted run it covers the
	// entries that finished before the abort.
	Summary *types.ExecutionSummary
}

// Run performs an install: discover the sector-file directory inside the
// Aurora install, resolve the repo source, build and execute the link
// plan. Discovery, manifest, and planning errors return a nil Result;
// an aborted execution returns the partial Result alongside the error.
func Run(fsys types.FS, cfg *config.Config, opts Options) (*Result, error) {
	done := logging.LogOperationStart(log, "install")
	defer done()

	if opts.Progress != nil {
		opts.Progress(-1)
	}

	auroraRoot, err := filepath.Abs(paths.ResolveAuroraRoot(opts.AuroraPath))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "resolving aurora path %s", opts.AuroraPath)
	}
	repoPath, err := filepath.Abs(opts.RepoPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "resolving repo path %s", opts.RepoPath)
	}

	sectorfileDir, err := paths.FindSectorfileDir(fsys, auroraRoot, cfg.Discovery)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", sectorfileDir).Msg("Sector-file directory located")

	sourceMain, err := paths.ResolveRepoSource(fsys, repoPath, cfg.Discovery)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", sourceMain).Msg("Repo source resolved")

	m, err := loadManifest(fsys, cfg, sourceMain, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	entries, err := m.Resolve(sourceMain, sectorfileDir)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Plan(entries, planner.DefaultOptions())
	if err != nil {
		return nil, err
	}

	executor := linker.NewExecutor(fsys, cfg.Link.CreateParents)
	summary, err := executor.Execute(plan, linker.Options{
		Force:   opts.Force,
		DryRun:  opts.DryRun,
		Observe: opts.Observe,
	})

	result := &Result{
		SectorfileDir: sectorfileDir,
		SourceMain:    sourceMain,
		Plan:          plan,
		Summary:       summary,
	}
	if err != nil {
		return result, err
	}

	if opts.Progress != nil {
		opts.Progress(100)
	}
	return result, nil
}

func loadManifest(fsys types.FS, cfg *config.Config, sourceMain, manifestPath string) (*manifest.Manifest, error) {
	if manifestPath == "" {
		return manifest.Default(fsys, cfg, sourceMain)
	}

	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "resolving manifest path %s", manifestPath)
	}
	return manifest.Load(fsys, abs)
}
