// Package runner applies file-scoped fix batches across many scripts.
package runner

import "github.com/yaklabco/shpatch/pkg/fsutil"

// Options controls multi-file patching behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// relative file names in the fix input. If empty, the process working
	// directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered shell scripts. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to
	// WorkingDir. Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// DetectShebangs admits extensionless files whose content identifies a
	// shell dialect, the way shellcheck itself discovers scripts.
	DetectShebangs bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// DryRun patches in memory without writing any file back.
	DryRun bool

	// Backups controls sidecar backups of files before they are rewritten.
	Backups fsutil.BackupConfig
}

// DefaultExtensions returns the default set of shell script extensions.
func DefaultExtensions() []string {
	return []string{".sh", ".bash", ".ksh", ".dash"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
