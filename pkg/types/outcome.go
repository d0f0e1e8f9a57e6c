package types

import "time"

// Mechanism identifies how a destination is (or would be) materialized
type Mechanism string

const (
	// MechanismJunction is a directory junction (directory symlink off Windows)
	MechanismJunction Mechanism = "junction"

	// MechanismHardlink is a hardlink to the source file
	MechanismHardlink Mechanism = "hardlink"

	// MechanismSymlink is a symbolic link to the source file
	MechanismSymlink Mechanism = "symlink"

	// MechanismCopy is a byte copy, the degraded last resort.
	// Copied destinations do not track later edits to the source.
	MechanismCopy Mechanism = "copy"

	// MechanismSkipped marks outcomes where no mechanism was applied
	MechanismSkipped Mechanism = "skipped"
)

// LinkStatus is the per-entry result category
type LinkStatus string

const (
	// StatusCreated indicates the destination link was newly established
	StatusCreated LinkStatus = "created"

	// StatusAlreadyLinked indicates the destination was already correct
	StatusAlreadyLinked LinkStatus = "already-linked"

	// StatusReplaced indicates an occupied destination was removed and relinked
	StatusReplaced LinkStatus = "replaced"

	// StatusFailed indicates the entry could not be established
	StatusFailed LinkStatus = "failed"
)

// LinkOutcome records what happened to a single plan entry
type LinkOutcome struct {
	// Entry is the plan entry this outcome belongs to
	Entry LinkEntry

	// Strategy is the mechanism that produced (or would produce) the result
	Strategy Mechanism

	// Status is the result category
	Status LinkStatus

	// Message is a human-readable note, e.g. the degraded-copy caveat
	Message string

	// Err carries the failure cause when Status is StatusFailed
	Err error
}

// ObserveFunc receives each outcome as the executor produces it
type ObserveFunc func(LinkOutcome)

// ProgressFunc receives coarse progress: -1 for indeterminate, then 100
type ProgressFunc func(percent int)

// ExecutionSummary aggregates the outcomes of one run
type ExecutionSummary struct {
	// Outcomes holds one entry per plan entry, in execution order
	Outcomes []LinkOutcome

	// ByStatus counts outcomes per status
	ByStatus map[LinkStatus]int

	// ByStrategy counts outcomes per mechanism
	ByStrategy map[Mechanism]int

	// Duration is the wall-clock time of the run
	Duration time.Duration
}

// Created returns the number of newly created links
func (s *ExecutionSummary) Created() int {
	return s.ByStatus[StatusCreated]
}

// AlreadyLinked returns the number of entries that were already correct
func (s *ExecutionSummary) AlreadyLinked() int {
	return s.ByStatus[StatusAlreadyLinked]
}

// Replaced returns the number of destinations that were replaced
func (s *ExecutionSummary) Replaced() int {
	return s.ByStatus[StatusReplaced]
}

// Failed returns the number of failed entries
func (s *ExecutionSummary) Failed() int {
	return s.ByStatus[StatusFailed]
}

// Copied returns the number of entries that fell back to a byte copy
func (s *ExecutionSummary) Copied() int {
	return s.ByStrategy[MechanismCopy]
}

// Degraded reports whether any entry fell back to a byte copy
func (s *ExecutionSummary) Degraded() bool {
	return s.Copied() > 0
}

// HasFailures reports whether any entry failed
func (s *ExecutionSummary) HasFailures() bool {
	return s.Failed() > 0
}
