package linker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/logging"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/report"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Options control one executor run
type Options struct {
	// Force replaces occupied destinations. Populated real directories
	// are never replaced, force or not.
	Force bool

	// DryRun classifies and reports without touching the filesystem
	DryRun bool

	// Observe, when set, receives each outcome as it is produced
	Observe types.ObserveFunc
}

// Executor walks a plan entry by entry and establishes links.
// Execution is best-effort: a failed entry is recorded and the run
// continues. The one exception is a missing source on a required entry,
// which aborts the run.
type Executor struct {
	fs        types.FS
	validator *Validator
	dirChain  []Strategy
	fileChain []Strategy
	log       zerolog.Logger
}

// NewExecutor builds an executor over fsys. createParents is handed to
// the validator.
func NewExecutor(fsys types.FS, createParents bool) *Executor {
	return &Executor{
		fs:        fsys,
		validator: NewValidator(fsys, createParents),
		dirChain:  DirectoryStrategies(fsys),
		fileChain: FileStrategies(fsys),
		log:       logging.GetLogger("linker"),
	}
}

// Execute runs the plan. The summary covers every entry that produced
// an outcome; on a run-aborting error the summary holds the outcomes
// recorded so far and the error is returned alongside it.
func (x *Executor) Execute(plan *types.LinkPlan, opts Options) (*types.ExecutionSummary, error) {
	start := time.Now()
	var outcomes []types.LinkOutcome

	for _, entry := range plan.Entries {
		outcome, abort := x.executeEntry(entry, opts)
		if abort != nil {
			x.log.Error().Err(abort).Str("source", entry.Source).Msg("Run aborted")
			return report.Summarize(outcomes, time.Since(start)), abort
		}

		x.log.Debug().
			Str("dest", outcome.Entry.Dest).
			Str("status", string(outcome.Status)).
			Str("strategy", string(outcome.Strategy)).
			Msg("Entry finished")

		outcomes = append(outcomes, outcome)
		if opts.Observe != nil {
			opts.Observe(outcome)
		}
	}

	return report.Summarize(outcomes, time.Since(start)), nil
}

// executeEntry produces exactly one outcome for the entry, or a non-nil
// abort error when the whole run must stop
func (x *Executor) executeEntry(entry types.LinkEntry, opts Options) (types.LinkOutcome, error) {
	validation, err := x.validator.Validate(entry, opts.DryRun)
	if err != nil {
		if entry.Required && errors.IsErrorCode(err, errors.ErrInvalidSource) {
			return types.LinkOutcome{}, errors.Wrapf(err, errors.ErrRequiredSourceMissing,
				"required source %s unavailable", entry.Source)
		}
		return failed(entry, types.MechanismSkipped, err), nil
	}

	chain := x.chainFor(entry.Kind)

	// Idempotence: a destination that already is the desired link is a
	// decided no-op, force or not
	if validation.DestState != DestMissing {
		for _, s := range chain {
			ok, satErr := s.Satisfied(entry.Source, entry.Dest)
			if satErr != nil {
				x.log.Debug().Err(satErr).Str("dest", entry.Dest).Msg("Satisfied check failed")
				continue
			}
			if ok {
				return types.LinkOutcome{
					Entry:    entry,
					Strategy: s.Mechanism(),
					Status:   types.StatusAlreadyLinked,
				}, nil
			}
		}
	}

	status := types.StatusCreated

	switch validation.DestState {
	case DestMissing:
		// Free to link

	case DestPopulatedDir:
		return failed(entry, types.MechanismSkipped, errors.Newf(errors.ErrUnsafeReplace,
			"destination %s is a populated directory; not replacing it", entry.Dest)), nil

	default:
		if !opts.Force {
			return failed(entry, types.MechanismSkipped, errors.Newf(errors.ErrDestinationOccupied,
				"destination %s already exists (use force to replace)", entry.Dest)), nil
		}
		status = types.StatusReplaced
		if !opts.DryRun {
			if err := x.fs.Remove(entry.Dest); err != nil {
				return failed(entry, types.MechanismSkipped, errors.Wrapf(err, errors.ErrUnsafeReplace,
					"removing occupied destination %s", entry.Dest)), nil
			}
		}
	}

	if opts.DryRun {
		message := "would create"
		if status == types.StatusReplaced {
			message = "would replace"
		}
		return types.LinkOutcome{
			Entry:    entry,
			Strategy: chain[0].Mechanism(),
			Status:   status,
			Message:  message,
		}, nil
	}

	return x.applyChain(entry, chain, status), nil
}

// applyChain tries each mechanism in order against a free destination
func (x *Executor) applyChain(entry types.LinkEntry, chain []Strategy, status types.LinkStatus) types.LinkOutcome {
	var lastErr error

	for _, s := range chain {
		attempt := s.Apply(entry.Source, entry.Dest)

		switch attempt.Status {
		case AttemptApplied:
			if err := s.Verify(entry.Source, entry.Dest); err != nil {
				if rbErr := s.Rollback(entry.Dest); rbErr != nil {
					x.log.Warn().Err(rbErr).Str("dest", entry.Dest).Msg("Rollback failed")
				}
				return failed(entry, s.Mechanism(), err)
			}
			outcome := types.LinkOutcome{
				Entry:    entry,
				Strategy: s.Mechanism(),
				Status:   status,
			}
			if s.Mechanism() == types.MechanismCopy {
				outcome.Message = CopyCaveat
			}
			return outcome

		case AttemptNotSupported:
			x.log.Debug().
				Err(attempt.Err).
				Str("dest", entry.Dest).
				Str("strategy", string(s.Mechanism())).
				Msg("Mechanism not supported here, trying next")
			lastErr = attempt.Err

		case AttemptFatal:
			return failed(entry, s.Mechanism(), errors.Wrapf(attempt.Err, errors.ErrLinkFailed,
				"%s %s -> %s", s.Mechanism(), entry.Dest, entry.Source))
		}
	}

	if lastErr == nil {
		return failed(entry, types.MechanismSkipped, errors.Newf(errors.ErrLinkFailed,
			"no link mechanism succeeded for %s", entry.Dest))
	}
	return failed(entry, types.MechanismSkipped, errors.Wrapf(lastErr, errors.ErrLinkFailed,
		"no link mechanism succeeded for %s", entry.Dest))
}

func (x *Executor) chainFor(kind types.EntryKind) []Strategy {
	if kind == types.EntryDirectory {
		return x.dirChain
	}
	return x.fileChain
}

func failed(entry types.LinkEntry, mechanism types.Mechanism, err error) types.LinkOutcome {
	return types.LinkOutcome{
		Entry:    entry,
		Strategy: mechanism,
		Status:   types.StatusFailed,
		Message:  err.Error(),
		Err:      err,
	}
}
