// Package cli wires the sectorlink commands: install, status, gui,
// docs, and version.
package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/version"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/display"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		formatName string
	)

	rootCmd := &cobra.Command{
		Use:   "sectorlink",
		Short: "Link Aurora sector files from a repository checkout",
		Long: `sectorlink installs a sector-file repository into an Aurora client:
it junctions the repo include directory into the sector-file folder and
links the top-level sector files, so pulling the repo updates Aurora
without copying anything around.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", "Output format: auto, term, or text")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGuiCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Main runs the CLI and returns the process exit code
func Main(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		display.NewRenderer(os.Stderr, display.FormatAuto).Error(err)
		return ExitCode(err)
	}
	return 0
}

// ExitCode maps a command error to the process exit code: 0 success,
// 1 link failures, 2 repo source not found, 3 required source missing,
// 10 anything else
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch errors.GetErrorCode(err) {
	case errors.ErrLinkFailed:
		return 1
	case errors.ErrRepoNotFound:
		return 2
	case errors.ErrRequiredSourceMissing:
		return 3
	default:
		return 10
	}
}

// outputFormat resolves the persistent --format flag
func outputFormat(cmd *cobra.Command) (display.Format, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := display.ParseFormat(name)
	if err != nil {
		return display.FormatAuto, errors.Wrapf(err, errors.ErrInvalidInput, "bad --format value %q", name)
	}
	return format, nil
}
