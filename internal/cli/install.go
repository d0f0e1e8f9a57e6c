package cli

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/display"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/filesystem"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/installer"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/report"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

func newInstallCmd() *cobra.Command {
	var (
		auroraPath   string
		repoPath     string
		manifestPath string
		reportPath   string
		force        bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Link the repo into the Aurora sector-file directory",
		Long: `Install locates the sector-file directory inside the Aurora install,
resolves the repo source tree, and establishes the links: the include
directory as a junction under each configured name, top-level sector
files as hardlinks (falling back to symlinks, then byte copies).

A second run is a no-op for everything that is already linked.`,
		Example: `  # Link a checkout into a local Aurora install
  sectorlink install --aurora "C:\Aurora" --repo .

  # Preview without touching anything
  sectorlink install --aurora "C:\Aurora" --repo . --dry-run

  # Replace stale files left over from manual installs
  sectorlink install --aurora "C:\Aurora" --repo . --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			renderer := display.NewRenderer(cmd.OutOrStdout(), format)

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts := installer.Options{
				AuroraPath:   auroraPath,
				RepoPath:     repoPath,
				ManifestPath: manifestPath,
				Force:        force,
				DryRun:       dryRun,
			}

			var spinner *pterm.SpinnerPrinter
			if !renderer.Plain() {
				spinner, _ = pterm.DefaultSpinner.Start("Linking sector files")
				opts.Observe = func(o types.LinkOutcome) {
					spinner.UpdateText(o.Entry.Dest)
				}
			}

			result, runErr := installer.Run(filesystem.NewOS(), cfg, opts)
			if spinner != nil {
				_ = spinner.Stop()
			}

			if result != nil {
				if dryRun {
					renderer.Header("Dry run - no changes were made")
				}
				for _, outcome := range result.Summary.Outcomes {
					renderer.Outcome(outcome)
				}
				renderer.Summary(result.Summary)

				if reportPath != "" {
					if err := writeReport(reportPath, result); err != nil {
						return err
					}
				}
			}

			if runErr != nil {
				return runErr
			}
			if result.Summary.HasFailures() {
				return errors.Newf(errors.ErrLinkFailed, "%d link(s) could not be established", result.Summary.Failed())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&auroraPath, "aurora", "", "Aurora install directory (or Aurora.exe path)")
	cmd.Flags().StringVar(&repoPath, "repo", "", "Sector-file repository checkout")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "TOML manifest replacing the built-in link set")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JUnit XML report of the run to this file")
	cmd.Flags().BoolVar(&force, "force", false, "Replace occupied destinations (never populated directories)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	_ = cmd.MarkFlagRequired("aurora")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func writeReport(path string, result *installer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrReportWrite, "creating report file %s", path)
	}
	defer f.Close()

	return report.WriteJUnit(f, result.Summary, "sectorlink")
}
