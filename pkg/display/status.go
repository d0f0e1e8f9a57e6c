package display

import (
	"github.com/pterm/pterm"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// mechanismVerbs defines past and future tense verbs for each link mechanism
var mechanismVerbs = map[types.Mechanism]struct {
	Past   string
	Future string
}{
	types.MechanismJunction: {Past: "junctioned to", Future: "will be junctioned to"},
	types.MechanismHardlink: {Past: "hardlinked to", Future: "will be hardlinked to"},
	types.MechanismSymlink:  {Past: "symlinked to", Future: "will be symlinked to"},
	types.MechanismCopy:     {Past: "copied from", Future: "will be copied from"},
}

// StatusStyle returns the appropriate pterm style for a link status
func StatusStyle(status types.LinkStatus) *pterm.Style {
	switch status {
	case types.StatusCreated:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case types.StatusReplaced:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case types.StatusAlreadyLinked:
		return pterm.NewStyle(pterm.FgGray)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}
