// Package tui provides the interactive install screen. It wraps the
// same engine the install command uses, streaming outcomes into a log
// pane as links are established.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Run starts the interactive screen and blocks until the user quits
func Run(fsys types.FS, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(fsys, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "running interactive screen")
	}
	return nil
}
