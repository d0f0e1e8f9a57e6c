// Package planner turns resolved link entries into an executable plan:
// paths cleaned, duplicate destinations collapsed, conflicts rejected,
// directories ordered before files.
package planner

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// Options control planning behavior
type Options struct {
	// CaseInsensitive folds path case when comparing destinations.
	// Windows and macOS filesystems collapse case, so two entries
	// differing only by case target the same file there.
	CaseInsensitive bool
}

// DefaultOptions returns the options matching the running platform
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: runtime.GOOS == "windows" || runtime.GOOS == "darwin",
	}
}

// Plan validates and orders entries. The same destination may appear
// more than once only with an identical source, in which case the last
// entry wins; different sources for one destination are a conflict that
// fails the whole plan before anything executes.
func Plan(entries []types.LinkEntry, opts Options) (*types.LinkPlan, error) {
	type slot struct {
		entry types.LinkEntry
		index int
	}

	var ordered []types.LinkEntry
	byDest := make(map[string]slot)

	for _, e := range entries {
		if !filepath.IsAbs(e.Source) || !filepath.IsAbs(e.Dest) {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"link entry paths must be absolute: %s -> %s", e.Source, e.Dest)
		}

		e.Source = filepath.Clean(e.Source)
		e.Dest = filepath.Clean(e.Dest)

		key := e.Dest
		if opts.CaseInsensitive {
			key = strings.ToLower(key)
		}

		if prev, ok := byDest[key]; ok {
			if !sameSource(prev.entry, e, opts) || prev.entry.Kind != e.Kind {
				return nil, errors.Newf(errors.ErrManifestConflict,
					"destination %s claimed by both %s and %s", e.Dest, prev.entry.Source, e.Source)
			}
			// Same desired link listed twice: the later entry wins,
			// keeping the earlier position
			ordered[prev.index] = e
			byDest[key] = slot{entry: e, index: prev.index}
			continue
		}

		byDest[key] = slot{entry: e, index: len(ordered)}
		ordered = append(ordered, e)
	}

	plan := &types.LinkPlan{}
	for _, e := range ordered {
		if e.Kind == types.EntryDirectory {
			plan.Entries = append(plan.Entries, e)
		}
	}
	for _, e := range ordered {
		if e.Kind == types.EntryFile {
			plan.Entries = append(plan.Entries, e)
		}
	}

	return plan, nil
}

func sameSource(a, b types.LinkEntry, opts Options) bool {
	if opts.CaseInsensitive {
		return strings.EqualFold(a.Source, b.Source)
	}
	return a.Source == b.Source
}
