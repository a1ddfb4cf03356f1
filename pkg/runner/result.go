package runner

import "github.com/yaklabco/shpatch/pkg/patch"

// FileOutcome records what happened to a single discovered file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Outcome is the per-file application outcome. Nil when the file was
	// skipped or errored before any fix was attempted.
	Outcome *patch.Outcome

	// Written reports whether the file was rewritten on disk.
	Written bool

	// Skipped reports that no fix in the batch targeted this file.
	Skipped bool

	// Err is set if the file could not be read or written.
	Err error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files with at least one targeted fix.
	FilesProcessed int

	// FilesSkipped is the number of discovered files no fix targeted.
	FilesSkipped int

	// FilesErrored is the number of files that failed to read or write.
	FilesErrored int

	// FilesModified is the number of files rewritten on disk.
	FilesModified int

	// FixesApplied is the total number of fixes accepted across all files.
	FixesApplied int

	// FixesRejected is the total number of fixes rejected across all files.
	FixesRejected int
}

// Result is the overall runner result. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasRejections reports whether any fix in the batch was rejected.
func (r *Result) HasRejections() bool {
	return r != nil && r.Stats.FixesRejected > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Outcome != nil {
		r.Stats.FixesApplied += len(outcome.Outcome.Applied)
		r.Stats.FixesRejected += len(outcome.Outcome.Rejected)
	}
}
