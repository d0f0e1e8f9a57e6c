package linker_test

import (
	"fmt"
	"syscall"
	"testing"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/linker"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/testutil"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSectorTree seeds a repo with a COnew directory and a top-level
// sector file, plus an Aurora install directory to link into
func newSectorTree(t *testing.T) *testutil.MemoryFS {
	t.Helper()
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/repo/Include/COnew", 0755))
	require.NoError(t, mfs.WriteFile("/repo/Include/COnew/ATS.isc", []byte("ats"), 0644))
	require.NoError(t, mfs.WriteFile("/repo/CO.isc", []byte("colombia sector"), 0644))
	require.NoError(t, mfs.MkdirAll("/aurora/Include", 0755))
	return mfs
}

func sectorPlan() *types.LinkPlan {
	return &types.LinkPlan{Entries: []types.LinkEntry{
		dirEntry("/repo/Include/COnew", "/aurora/Include/COnew"),
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}
}

func TestExecuteFirstRun(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	summary, err := x.Execute(sectorPlan(), linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, 2, summary.Created())
	assert.False(t, summary.HasFailures())
	assert.False(t, summary.Degraded())

	assert.Equal(t, types.MechanismJunction, summary.Outcomes[0].Strategy)
	assert.Equal(t, types.MechanismHardlink, summary.Outcomes[1].Strategy)

	// The junction points into the repo
	target, err := mfs.Readlink("/aurora/Include/COnew")
	require.NoError(t, err)
	assert.Equal(t, "/repo/Include/COnew", target)

	same, err := mfs.SameFile("/repo/CO.isc", "/aurora/CO.isc")
	require.NoError(t, err)
	assert.True(t, same)
}

func TestExecuteSecondRunIsNoOp(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	_, err := x.Execute(sectorPlan(), linker.Options{})
	require.NoError(t, err)

	summary, err := x.Execute(sectorPlan(), linker.Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.AlreadyLinked())
	assert.Equal(t, 0, summary.Created())
	assert.Equal(t, 0, summary.Replaced())
	assert.False(t, summary.HasFailures())
}

func TestExecuteForceKeepsCorrectLinks(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	_, err := x.Execute(sectorPlan(), linker.Options{})
	require.NoError(t, err)

	// Force does not rebuild destinations that are already right
	summary, err := x.Execute(sectorPlan(), linker.Options{Force: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.AlreadyLinked())
	assert.Equal(t, 0, summary.Replaced())
}

func TestExecuteCopyFallback(t *testing.T) {
	mfs := newSectorTree(t)
	mfs.WithOpError("link", "*", &linkError{err: syscall.EXDEV})
	mfs.WithOpError("symlink", "*", &linkError{err: syscall.EPERM})

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusCreated, outcome.Status)
	assert.Equal(t, types.MechanismCopy, outcome.Strategy)
	assert.Equal(t, linker.CopyCaveat, outcome.Message)
	assert.True(t, summary.Degraded())
	assert.Equal(t, 1, summary.Copied())

	content, err := mfs.ReadFile("/aurora/CO.isc")
	require.NoError(t, err)
	assert.Equal(t, []byte("colombia sector"), content)
}

func TestExecutePopulatedDirNeverReplaced(t *testing.T) {
	mfs := newSectorTree(t)
	require.NoError(t, mfs.MkdirAll("/aurora/Include/COnew", 0755))
	require.NoError(t, mfs.WriteFile("/aurora/Include/COnew/custom.isc", []byte("handmade"), 0644))

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		dirEntry("/repo/Include/COnew", "/aurora/Include/COnew"),
	}}

	summary, err := x.Execute(plan, linker.Options{Force: true})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Equal(t, types.MechanismSkipped, outcome.Strategy)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrUnsafeReplace))

	// The directory and its contents were not touched
	content, err := mfs.ReadFile("/aurora/Include/COnew/custom.isc")
	require.NoError(t, err)
	assert.Equal(t, []byte("handmade"), content)
}

func TestExecuteOccupiedWithoutForce(t *testing.T) {
	mfs := newSectorTree(t)
	require.NoError(t, mfs.WriteFile("/aurora/CO.isc", []byte("stale"), 0644))

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Equal(t, types.MechanismSkipped, outcome.Strategy)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrDestinationOccupied))

	content, err := mfs.ReadFile("/aurora/CO.isc")
	require.NoError(t, err)
	assert.Equal(t, []byte("stale"), content)
}

func TestExecuteForceReplacesStaleFile(t *testing.T) {
	mfs := newSectorTree(t)
	require.NoError(t, mfs.WriteFile("/aurora/CO.isc", []byte("stale"), 0644))

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{Force: true})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusReplaced, outcome.Status)
	assert.Equal(t, types.MechanismHardlink, outcome.Strategy)

	same, err := mfs.SameFile("/repo/CO.isc", "/aurora/CO.isc")
	require.NoError(t, err)
	assert.True(t, same)
}

func TestExecuteRequiredSourceMissingAborts(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	missing := dirEntry("/repo/Include/Gone", "/aurora/Include/Gone")
	missing.Required = true

	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		dirEntry("/repo/Include/COnew", "/aurora/Include/COnew"),
		missing,
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRequiredSourceMissing))

	// The summary keeps what ran before the abort
	require.NotNil(t, summary)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, types.StatusCreated, summary.Outcomes[0].Status)

	// Entries after the aborting one never ran
	assert.False(t, mfs.Exists("/aurora/CO.isc"))
}

func TestExecuteOptionalSourceMissingContinues(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/missing.isc", "/aurora/missing.isc"),
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, types.StatusFailed, summary.Outcomes[0].Status)
	assert.True(t, errors.IsErrorCode(summary.Outcomes[0].Err, errors.ErrInvalidSource))
	assert.Equal(t, types.StatusCreated, summary.Outcomes[1].Status)
	assert.True(t, summary.HasFailures())
}

func TestExecuteDryRun(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	summary, err := x.Execute(sectorPlan(), linker.Options{DryRun: true})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, types.StatusCreated, summary.Outcomes[0].Status)
	assert.Equal(t, types.MechanismJunction, summary.Outcomes[0].Strategy)
	assert.Equal(t, "would create", summary.Outcomes[0].Message)
	assert.Equal(t, types.MechanismHardlink, summary.Outcomes[1].Strategy)

	// Nothing was materialized
	assert.False(t, mfs.Exists("/aurora/Include/COnew"))
	assert.False(t, mfs.Exists("/aurora/CO.isc"))
}

func TestExecuteDryRunForceReplace(t *testing.T) {
	mfs := newSectorTree(t)
	require.NoError(t, mfs.WriteFile("/aurora/CO.isc", []byte("stale"), 0644))

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{Force: true, DryRun: true})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, types.StatusReplaced, summary.Outcomes[0].Status)
	assert.Equal(t, "would replace", summary.Outcomes[0].Message)

	// The occupied destination survives a dry run
	content, err := mfs.ReadFile("/aurora/CO.isc")
	require.NoError(t, err)
	assert.Equal(t, []byte("stale"), content)
}

func TestExecuteObserveSeesEveryOutcomeInOrder(t *testing.T) {
	mfs := newSectorTree(t)
	x := linker.NewExecutor(mfs, true)

	var seen []string
	opts := linker.Options{Observe: func(o types.LinkOutcome) {
		seen = append(seen, o.Entry.Dest)
	}}

	_, err := x.Execute(sectorPlan(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"/aurora/Include/COnew", "/aurora/CO.isc"}, seen)
}

func TestExecuteVerifyFailureRollsBack(t *testing.T) {
	mfs := newSectorTree(t)
	// Hardlinks are off-volume; the symlink applies but cannot be read
	// back, so verification fails
	mfs.WithOpError("link", "*", &linkError{err: syscall.EXDEV})
	mfs.WithOpError("readlink", "/aurora/CO.isc", fmt.Errorf("link unreadable"))

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Equal(t, types.MechanismSymlink, outcome.Strategy)

	// The unverifiable link was rolled back
	assert.False(t, mfs.Exists("/aurora/CO.isc"))
}

func TestExecuteCopyWriteFailureIsFatal(t *testing.T) {
	mfs := newSectorTree(t)
	mfs.WithOpError("link", "*", &linkError{err: syscall.EXDEV})
	mfs.WithOpError("symlink", "*", &linkError{err: syscall.EPERM})
	mfs.WithOpError("writefile", "/aurora/CO.isc", syscall.EACCES)

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		fileEntry("/repo/CO.isc", "/aurora/CO.isc"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Equal(t, types.MechanismCopy, outcome.Strategy)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrLinkFailed))
}

func TestExecuteDirChainExhaustion(t *testing.T) {
	mfs := newSectorTree(t)
	mfs.WithOpError("symlinkdir", "*", &linkError{err: syscall.EPERM})

	x := linker.NewExecutor(mfs, true)
	plan := &types.LinkPlan{Entries: []types.LinkEntry{
		dirEntry("/repo/Include/COnew", "/aurora/Include/COnew"),
	}}

	summary, err := x.Execute(plan, linker.Options{})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Equal(t, types.MechanismSkipped, outcome.Strategy)
	assert.True(t, errors.IsErrorCode(outcome.Err, errors.ErrLinkFailed))
	assert.ErrorIs(t, outcome.Err, syscall.EPERM)
}
