package cli

import (
	"github.com/spf13/cobra"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/internal/tui"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/filesystem"
)

func newGuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the interactive install screen",
		Long: `Gui opens a terminal screen where the Aurora and repo paths can be
typed in, force and dry-run toggled, and the run watched link by link.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return tui.Run(filesystem.NewOS(), cfg)
		},
	}
}
