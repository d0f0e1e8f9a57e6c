package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/linker"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/report"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutcomes() []types.LinkOutcome {
	occupied := errors.Newf(errors.ErrDestinationOccupied, "destination /aurora/CO.isc already exists")

	return []types.LinkOutcome{
		{
			Entry:    types.LinkEntry{Kind: types.EntryDirectory, Source: "/repo/Include/COnew", Dest: "/aurora/Include/COnew"},
			Strategy: types.MechanismJunction,
			Status:   types.StatusCreated,
		},
		{
			Entry:    types.LinkEntry{Kind: types.EntryFile, Source: "/repo/CO.isc", Dest: "/aurora/CO.isc"},
			Strategy: types.MechanismSkipped,
			Status:   types.StatusFailed,
			Message:  occupied.Error(),
			Err:      occupied,
		},
		{
			Entry:    types.LinkEntry{Kind: types.EntryFile, Source: "/repo/CO_TMA.isc", Dest: "/aurora/CO_TMA.isc"},
			Strategy: types.MechanismHardlink,
			Status:   types.StatusAlreadyLinked,
		},
		{
			Entry:    types.LinkEntry{Kind: types.EntryFile, Source: "/repo/CO_FIR.isc", Dest: "/aurora/CO_FIR.isc"},
			Strategy: types.MechanismCopy,
			Status:   types.StatusCreated,
			Message:  linker.CopyCaveat,
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := report.Summarize(sampleOutcomes(), 42*time.Millisecond)

	assert.Equal(t, 2, summary.Created())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 1, summary.AlreadyLinked())
	assert.Equal(t, 0, summary.Replaced())
	assert.Equal(t, 1, summary.Copied())
	assert.True(t, summary.Degraded())
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 42*time.Millisecond, summary.Duration)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := report.Summarize(nil, 0)

	assert.Empty(t, summary.Outcomes)
	assert.False(t, summary.HasFailures())
	assert.False(t, summary.Degraded())
}

func TestWriteJUnit(t *testing.T) {
	summary := report.Summarize(sampleOutcomes(), 42*time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJUnit(&buf, summary, "sectorlink"))
	xml := buf.String()

	assert.Contains(t, xml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, xml, `<testsuite name="sectorlink" tests="4" failures="1" skipped="1" time="0.042">`)
	assert.Contains(t, xml, `<testcase name="/aurora/Include/COnew" classname="junction"/>`)
	assert.Contains(t, xml, `<failure type="DESTINATION_OCCUPIED"`)
	assert.Contains(t, xml, `<skipped/>`)
	assert.Contains(t, xml, linker.CopyCaveat)
}

func TestWriteJUnitPropagatesWriteErrors(t *testing.T) {
	summary := report.Summarize(sampleOutcomes(), 0)

	err := report.WriteJUnit(failingWriter{}, summary, "sectorlink")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrReportWrite))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
