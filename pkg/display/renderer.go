package display

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Renderer writes outcome lines and run summaries in the configured
// format. FormatText output carries no escape codes, so it is safe for
// pipes and logs.
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a renderer. FormatAuto is resolved against the
// writer when it is a file, otherwise it falls back to plain text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatText
		}
	}
	return &Renderer{w: w, format: format}
}

// Plain reports whether the renderer emits unstyled text
func (r *Renderer) Plain() bool {
	return r.format == FormatText
}

// Header writes a section header
func (r *Renderer) Header(text string) {
	if r.Plain() {
		fmt.Fprintln(r.w, text)
		return
	}
	fmt.Fprintln(r.w, GetStyle("header").Render(text))
}

// Outcome writes the three-column line for one link outcome:
// mechanism, destination, what happened
func (r *Renderer) Outcome(o types.LinkOutcome) {
	mechanism := fmt.Sprintf("%-8s", string(o.Strategy))
	if !r.Plain() {
		mechanism = StatusStyle(o.Status).Sprint(mechanism)
	}
	fmt.Fprintf(r.w, "  %s : %s : %s\n", mechanism, o.Entry.Dest, describe(o))
}

// describe builds the third column from the outcome's status and verbs
func describe(o types.LinkOutcome) string {
	if o.Status == types.StatusFailed {
		return o.Message
	}

	verbs := mechanismVerbs[o.Strategy]
	switch {
	case o.Message == "would create":
		return verbs.Future + " " + o.Entry.Source
	case o.Message == "would replace":
		return verbs.Future + " " + o.Entry.Source + " (replacing)"
	case o.Status == types.StatusAlreadyLinked:
		return "already " + verbs.Past + " " + o.Entry.Source
	case o.Status == types.StatusReplaced:
		return verbs.Past + " " + o.Entry.Source + " (replaced)"
	default:
		line := verbs.Past + " " + o.Entry.Source
		if o.Message != "" {
			line += " (" + o.Message + ")"
		}
		return line
	}
}

// Summary writes the end-of-run block: counts, duration, and the
// degraded-copy caveat when any entry fell back to a byte copy
func (r *Renderer) Summary(s *types.ExecutionSummary) {
	counts := summaryCounts(s)
	line := fmt.Sprintf("Links: %s (%s)", counts, s.Duration.Round(time.Millisecond))

	if r.Plain() {
		fmt.Fprintln(r.w, line)
		if s.Degraded() {
			fmt.Fprintln(r.w, copyCaveatLine(s))
		}
		return
	}

	fmt.Fprintln(r.w, GetStyle("summary").Render(line))
	if s.Degraded() {
		fmt.Fprintln(r.w, GetStyle("warning").Render(copyCaveatLine(s)))
	}
}

func summaryCounts(s *types.ExecutionSummary) string {
	if len(s.Outcomes) == 0 {
		return "nothing to do"
	}

	var parts []string
	if n := s.Created(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d created", n))
	}
	if n := s.Replaced(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d replaced", n))
	}
	if n := s.AlreadyLinked(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d already linked", n))
	}
	if n := s.Failed(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	return strings.Join(parts, ", ")
}

func copyCaveatLine(s *types.ExecutionSummary) string {
	return fmt.Sprintf("%d destination(s) fell back to a byte copy; repo edits will not show up until the next install", s.Copied())
}

// Error writes a coded error line
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}

	code := errors.GetErrorCode(err)
	detail := err.Error()

	var slErr *errors.SectorlinkError
	if stderrors.As(err, &slErr) {
		detail = slErr.Message
		if slErr.Wrapped != nil {
			detail += ": " + slErr.Wrapped.Error()
		}
	}

	if r.Plain() {
		fmt.Fprintf(r.w, "Error [%s]: %s\n", code, detail)
		return
	}
	fmt.Fprintf(r.w, "%s [%s] %s\n",
		pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(string(code)),
		detail)
}
