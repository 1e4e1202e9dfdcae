package mods

import "github.com/yaklabco/plugmod/pkg/fix"

// FileState is where a file is in its load, mutate and commit cycle.
type FileState int

const (
	StateUnloaded FileState = iota
	StateLoaded
	StateMutated
	StateCommitted
	StateReverted
)

func (s FileState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateMutated:
		return "mutated"
	case StateCommitted:
		return "committed"
	case StateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// FileOutcome records what the pipeline did to one native file.
type FileOutcome struct {
	Platform Platform
	ModName  ModName
	Path     string

	State FileState

	// Changed is true when the mods produced different content.
	Changed bool

	// Removed is true when the file is deleted instead of written.
	Removed bool

	// Diff is the unified diff of the change; empty when unchanged.
	Diff string

	// BackupCreated is true if a backup was written before the commit.
	BackupCreated bool

	// Mods lists the mods that ran, in order. Skipped optional mods are absent.
	Mods []string
}

// Written reports whether the file was written or removed on disk.
func (o FileOutcome) Written() bool {
	return o.State == StateCommitted && o.Changed
}

// Warning is a non-fatal problem, such as a skipped optional mod.
type Warning struct {
	Platform Platform
	ModName  ModName
	Mod      string
	Path     string
	Err      error
}

func (w Warning) String() string {
	return (&ModError{Platform: w.Platform, ModName: w.ModName, Mod: w.Mod, Path: w.Path, Err: w.Err}).Error()
}

// Stats summarizes a run.
type Stats struct {
	FilesLoaded   int
	FilesChanged  int
	FilesWritten  int
	FilesRemoved  int
	FilesReverted int
	Additions     int
	Deletions     int
}

// Result is the outcome of Compile.
type Result struct {
	// Files are ordered by platform, then by provider order.
	Files []FileOutcome

	Warnings []Warning
}

// Stats aggregates the file outcomes.
func (r *Result) Stats() Stats {
	var stats Stats
	if r == nil {
		return stats
	}
	for _, file := range r.Files {
		stats.FilesLoaded++
		if file.State == StateReverted {
			stats.FilesReverted++
			continue
		}
		if !file.Changed {
			continue
		}
		stats.FilesChanged++
		if file.Written() {
			if file.Removed {
				stats.FilesRemoved++
			} else {
				stats.FilesWritten++
			}
		}
		add, del := fix.DiffStats(file.Diff)
		stats.Additions += add
		stats.Deletions += del
	}
	return stats
}

// HasChanges reports whether any file differs from disk.
func (r *Result) HasChanges() bool {
	return r.Stats().FilesChanged > 0
}

func (r *Result) merge(other *Result) {
	if other == nil {
		return
	}
	r.Files = append(r.Files, other.Files...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
