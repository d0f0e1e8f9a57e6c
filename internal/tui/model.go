package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/config"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/installer"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Focus zones: the two path inputs, then the control row where toggles
// and the run key live
const (
	focusAurora = iota
	focusRepo
	focusControls
)

// outcomeMsg carries one link outcome from the running engine
type outcomeMsg types.LinkOutcome

// runDoneMsg carries the final result of a run
type runDoneMsg struct {
	result *installer.Result
	err    error
}

// keyMap defines the key bindings for the install screen
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Run    key.Binding
	Force  key.Binding
	DryRun key.Binding
	Quit   key.Binding
	QuitQ  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Force: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle force"),
		),
		DryRun: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle dry-run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		// q quits too, but only outside the path inputs where it is a
		// literal character
		QuitQ: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the install screen
var styles = struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Toggle  lipgloss.Style
	Active  lipgloss.Style
	Help    lipgloss.Style
	Created lipgloss.Style
	Kept    lipgloss.Style
	Failed  lipgloss.Style
	Footer  lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Toggle:  lipgloss.NewStyle().Padding(0, 1),
	Active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Created: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Kept:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	Footer:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

// Model is the BubbleTea model for the interactive install screen
type Model struct {
	fsys types.FS
	cfg  *config.Config

	inputs  []textinput.Model
	focus   int
	force   bool
	dryRun  bool
	keys    keyMap
	running bool

	lines    []string
	outcomes chan types.LinkOutcome
	result   *installer.Result
	runErr   error

	width    int
	quitting bool
}

// NewModel creates the install screen with empty paths
func NewModel(fsys types.FS, cfg *config.Config) Model {
	aurora := textinput.New()
	aurora.Placeholder = `C:\Aurora`
	aurora.CharLimit = 260
	aurora.Width = 48
	aurora.Focus()

	repo := textinput.New()
	repo.Placeholder = `C:\src\sectorfiles`
	repo.CharLimit = 260
	repo.Width = 48

	return Model{
		fsys:   fsys,
		cfg:    cfg,
		inputs: []textinput.Model{aurora, repo},
		keys:   defaultKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case outcomeMsg:
		m.lines = append(m.lines, renderOutcomeLine(types.LinkOutcome(msg)))
		return m, waitForOutcome(m.outcomes)

	case runDoneMsg:
		m.running = false
		m.result = msg.result
		m.runErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % 3), nil

	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + 2) % 3), nil
	}

	if m.focus == focusControls {
		switch {
		case key.Matches(msg, m.keys.QuitQ):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Force):
			m.force = !m.force
			return m, nil

		case key.Matches(msg, m.keys.DryRun):
			m.dryRun = !m.dryRun
			return m, nil

		case key.Matches(msg, m.keys.Run):
			return m.startRun()
		}
		return m, nil
	}

	// Enter inside a path input advances to the next field
	if key.Matches(msg, m.keys.Run) {
		return m.setFocus(m.focus + 1), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) setFocus(focus int) Model {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	aurora := strings.TrimSpace(m.inputs[focusAurora].Value())
	repo := strings.TrimSpace(m.inputs[focusRepo].Value())
	if aurora == "" || repo == "" {
		m.lines = append(m.lines, styles.Error.Render("both paths are needed before running"))
		return m, nil
	}

	m.running = true
	m.lines = nil
	m.result = nil
	m.runErr = nil
	m.outcomes = make(chan types.LinkOutcome, 64)

	opts := installer.Options{
		AuroraPath: aurora,
		RepoPath:   repo,
		Force:      m.force,
		DryRun:     m.dryRun,
	}

	return m, tea.Batch(
		runInstall(m.fsys, m.cfg, opts, m.outcomes),
		waitForOutcome(m.outcomes),
	)
}

// runInstall executes the engine in the command goroutine, streaming
// outcomes through ch as they happen
func runInstall(fsys types.FS, cfg *config.Config, opts installer.Options, ch chan types.LinkOutcome) tea.Cmd {
	return func() tea.Msg {
		opts.Observe = func(o types.LinkOutcome) { ch <- o }
		result, err := installer.Run(fsys, cfg, opts)
		close(ch)
		return runDoneMsg{result: result, err: err}
	}
}

// waitForOutcome relays the next streamed outcome into the update loop
func waitForOutcome(ch chan types.LinkOutcome) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-ch
		if !ok {
			return nil
		}
		return outcomeMsg(o)
	}
}

func renderOutcomeLine(o types.LinkOutcome) string {
	label := fmt.Sprintf("%-8s", string(o.Strategy))

	switch o.Status {
	case types.StatusFailed:
		return styles.Failed.Render(label) + " " + o.Entry.Dest + "  " + o.Message
	case types.StatusAlreadyLinked:
		return styles.Kept.Render(label) + " " + o.Entry.Dest + "  already linked"
	default:
		line := styles.Created.Render(label) + " " + o.Entry.Dest
		if o.Message != "" {
			line += "  " + o.Message
		}
		return line
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("sectorlink"))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("Aurora path ") + m.inputs[focusAurora].View())
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Repo path   ") + m.inputs[focusRepo].View())
	b.WriteString("\n\n")

	b.WriteString(m.renderControls())
	b.WriteString("\n")

	if len(m.lines) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(m.lines, "\n"))
		b.WriteString("\n")
	}

	if m.result != nil || m.runErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.Footer.Render(m.renderFooter()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("tab fields • f force • d dry-run • enter run • q/esc quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderControls() string {
	force := checkbox("force", m.force)
	dryRun := checkbox("dry-run", m.dryRun)

	line := styles.Toggle.Render(force) + styles.Toggle.Render(dryRun)
	switch {
	case m.running:
		line += styles.Toggle.Render("linking…")
	case m.focus == focusControls:
		line += styles.Active.Render("› enter to run")
	}
	return line
}

func checkbox(label string, checked bool) string {
	if checked {
		return "[x] " + label
	}
	return "[ ] " + label
}

func (m Model) renderFooter() string {
	if m.result == nil || m.result.Summary == nil {
		return styles.Error.Render(m.runErr.Error())
	}

	s := m.result.Summary
	footer := fmt.Sprintf("created %d · replaced %d · already linked %d · failed %d (%s)",
		s.Created(), s.Replaced(), s.AlreadyLinked(), s.Failed(),
		s.Duration.Round(time.Millisecond))

	if s.Degraded() {
		footer += "\n" + fmt.Sprintf("%d destination(s) fell back to a byte copy", s.Copied())
	}
	if m.runErr != nil {
		footer += "\n" + styles.Error.Render(m.runErr.Error())
	}
	return footer
}
