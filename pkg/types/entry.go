package types

// EntryKind distinguishes directory entries from file entries
type EntryKind string

const (
	// EntryDirectory is linked as a whole (junction or directory symlink)
	EntryDirectory EntryKind = "directory"

	// EntryFile is linked individually (hardlink, symlink, or copy)
	EntryFile EntryKind = "file"
)

// LinkEntry describes one desired link from a repo source to a destination
// inside the Aurora sector-file tree
type LinkEntry struct {
	// Kind selects the strategy family used for this entry
	Kind EntryKind

	// Source is the absolute path of the file or directory in the repo
	Source string

	// Dest is the absolute path Aurora expects
	Dest string

	// Required marks entries whose missing source aborts the whole run
	Required bool
}

// LinkPlan is an ordered, conflict-free list of entries.
// Directory entries always precede file entries so that a file whose
// destination lives inside a junctioned directory never races its parent.
type LinkPlan struct {
	Entries []LinkEntry
}

// Directories returns the directory entries of the plan, in plan order
func (p *LinkPlan) Directories() []LinkEntry {
	var dirs []LinkEntry
	for _, e := range p.Entries {
		if e.Kind == EntryDirectory {
			dirs = append(dirs, e)
		}
	}
	return dirs
}

// Files returns the file entries of the plan, in plan order
func (p *LinkPlan) Files() []LinkEntry {
	var files []LinkEntry
	for _, e := range p.Entries {
		if e.Kind == EntryFile {
			files = append(files, e)
		}
	}
	return files
}
