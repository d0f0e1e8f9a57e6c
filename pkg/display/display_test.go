package display_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/display"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/report"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", display.FormatAuto.String())
	assert.Equal(t, "term", display.FormatTerminal.String())
	assert.Equal(t, "text", display.FormatText.String())
	assert.Equal(t, "unknown", display.Format(99).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    display.Format
		wantErr bool
	}{
		{"auto", display.FormatAuto, false},
		{"", display.FormatAuto, false},
		{"term", display.FormatTerminal, false},
		{"terminal", display.FormatTerminal, false},
		{"TEXT", display.FormatText, false},
		{"plain", display.FormatText, false},
		{"yaml", display.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := display.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, display.FormatText, display.DetectFormat(os.Stdout))
}

func TestDetectFormatPipedOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	// A regular file is not a terminal
	assert.Equal(t, display.FormatText, display.DetectFormat(f))
}

func createdOutcome() types.LinkOutcome {
	return types.LinkOutcome{
		Entry: types.LinkEntry{
			Kind:   types.EntryDirectory,
			Source: "/repo/Include/COnew",
			Dest:   "/aurora/Include/COnew",
		},
		Strategy: types.MechanismJunction,
		Status:   types.StatusCreated,
	}
}

func TestRenderOutcomePlain(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.LinkOutcome)
		want   string
	}{
		{
			name:   "created",
			mutate: func(o *types.LinkOutcome) {},
			want:   "  junction : /aurora/Include/COnew : junctioned to /repo/Include/COnew\n",
		},
		{
			name: "already linked",
			mutate: func(o *types.LinkOutcome) {
				o.Status = types.StatusAlreadyLinked
			},
			want: "  junction : /aurora/Include/COnew : already junctioned to /repo/Include/COnew\n",
		},
		{
			name: "replaced",
			mutate: func(o *types.LinkOutcome) {
				o.Status = types.StatusReplaced
			},
			want: "  junction : /aurora/Include/COnew : junctioned to /repo/Include/COnew (replaced)\n",
		},
		{
			name: "dry run create",
			mutate: func(o *types.LinkOutcome) {
				o.Message = "would create"
			},
			want: "  junction : /aurora/Include/COnew : will be junctioned to /repo/Include/COnew\n",
		},
		{
			name: "failed",
			mutate: func(o *types.LinkOutcome) {
				o.Status = types.StatusFailed
				o.Strategy = types.MechanismSkipped
				o.Message = "destination occupied"
			},
			want: "  skipped  : /aurora/Include/COnew : destination occupied\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := createdOutcome()
			tt.mutate(&outcome)

			var buf bytes.Buffer
			display.NewRenderer(&buf, display.FormatText).Outcome(outcome)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderOutcomeTerminalKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	display.NewRenderer(&buf, display.FormatTerminal).Outcome(createdOutcome())

	out := buf.String()
	assert.Contains(t, out, "junction")
	assert.Contains(t, out, "/aurora/Include/COnew")
	assert.Contains(t, out, "junctioned to /repo/Include/COnew")
}

func TestRenderSummary(t *testing.T) {
	outcomes := []types.LinkOutcome{
		createdOutcome(),
		{
			Entry:    types.LinkEntry{Kind: types.EntryFile, Source: "/repo/CO.isc", Dest: "/aurora/CO.isc"},
			Strategy: types.MechanismCopy,
			Status:   types.StatusCreated,
			Message:  "copied, not linked",
		},
	}
	summary := report.Summarize(outcomes, 42*time.Millisecond)

	var buf bytes.Buffer
	display.NewRenderer(&buf, display.FormatText).Summary(summary)

	out := buf.String()
	assert.Contains(t, out, "Links: 2 created (42ms)")
	assert.Contains(t, out, "1 destination(s) fell back to a byte copy")
}

func TestRenderSummaryEmpty(t *testing.T) {
	summary := report.Summarize(nil, 0)

	var buf bytes.Buffer
	display.NewRenderer(&buf, display.FormatText).Summary(summary)

	assert.Contains(t, buf.String(), "nothing to do")
}

func TestRenderError(t *testing.T) {
	err := errors.Newf(errors.ErrRepoNotFound, "no sector data under %s", "/repo")

	var buf bytes.Buffer
	display.NewRenderer(&buf, display.FormatText).Error(err)

	assert.Equal(t, "Error [REPO_NOT_FOUND]: no sector data under /repo\n", buf.String())
}

func TestRenderErrorNil(t *testing.T) {
	var buf bytes.Buffer
	display.NewRenderer(&buf, display.FormatText).Error(nil)
	assert.Empty(t, buf.String())
}

func TestLoadStylesFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := display.LoadStylesFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("styles: ["), 0644))

		err := display.LoadStylesFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestGetStyleUnknownName(t *testing.T) {
	// Unknown names fall back to a zero style instead of panicking
	assert.NotPanics(t, func() {
		_ = display.GetStyle("no-such-style").Render("text")
	})
}
