package cli

import (
	"github.com/spf13/cobra"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/display"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/filesystem"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/installer"
)

func newStatusCmd() *cobra.Command {
	var (
		auroraPath   string
		repoPath     string
		manifestPath string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current link state without changing anything",
		Long: `Status classifies every planned link against what is on disk:
already linked, would be created, or blocked by an occupied destination.
Nothing is modified.`,
		Example: `  sectorlink status --aurora "C:\Aurora" --repo .`,
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

			result, err := installer.Run(filesystem.NewOS(), cfg, installer.Options{
				AuroraPath:   auroraPath,
				RepoPath:     repoPath,
				ManifestPath: manifestPath,
				DryRun:       true,
			})
			if err != nil {
				return err
			}

			renderer.Header("Link state for " + result.SectorfileDir)
			for _, outcome := range result.Summary.Outcomes {
				renderer.Outcome(outcome)
			}
			renderer.Summary(result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&auroraPath, "aurora", "", "Aurora install directory (or Aurora.exe path)")
	cmd.Flags().StringVar(&repoPath, "repo", "", "Sector-file repository checkout")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "TOML manifest replacing the built-in link set")
	_ = cmd.MarkFlagRequired("aurora")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
