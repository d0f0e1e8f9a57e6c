// Package report aggregates link outcomes into run summaries and
// serializes them for CI consumption.
package report

import (
	"time"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Summarize aggregates outcomes into an ExecutionSummary. Pure
// aggregation: counting only, no I/O, no presentation.
func Summarize(outcomes []types.LinkOutcome, duration time.Duration) *types.ExecutionSummary {
	summary := &types.ExecutionSummary{
		Outcomes:   outcomes,
		ByStatus:   make(map[types.LinkStatus]int),
		ByStrategy: make(map[types.Mechanism]int),
		Duration:   duration,
	}

	for _, o := range outcomes {
		summary.ByStatus[o.Status]++
		summary.ByStrategy[o.Strategy]++
	}

	return summary
}
