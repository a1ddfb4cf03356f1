package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/shpatch/internal/logging"
	"github.com/yaklabco/shpatch/pkg/fsutil"
	"github.com/yaklabco/shpatch/pkg/patch"
)

// Runner applies a file-scoped fix batch across discovered scripts.
type Runner struct {
	fixes []*patch.Fix
}

// New creates a Runner for the given fixes. Each fix is routed to the file
// its File field names; fixes without a file are ignored by Run.
func New(fixes []*patch.Fix) *Runner {
	return &Runner{fixes: fixes}
}

// Run discovers files under opts.Paths and patches them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. Discovery errors abort the run; per-file errors do not.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	byFile := groupFixes(r.fixes, workDir)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				select {
				case <-ctx.Done():
					return
				case outCh <- processFile(ctx, path, byFile[path], opts):
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; rebuild discovery order afterwards.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// groupFixes buckets fixes by the absolute cleaned path they target.
func groupFixes(fixes []*patch.Fix, workDir string) map[string][]*patch.Fix {
	grouped := make(map[string][]*patch.Fix)
	for _, fix := range fixes {
		if fix == nil || fix.File == "" {
			continue
		}
		path := fix.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		grouped[filepath.Clean(path)] = append(grouped[filepath.Clean(path)], fix)
	}
	return grouped
}

// processFile patches one file in memory and, unless dry-running, writes the
// result back atomically.
func processFile(ctx context.Context, path string, fixes []*patch.Fix, opts Options) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	out := FileOutcome{Path: path}
	if len(fixes) == 0 {
		out.Skipped = true
		return out
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		out.Err = fmt.Errorf("read %s: %w", path, err)
		return out
	}

	session := patch.NewSession(string(content))
	out.Outcome = session.ApplyFixes(fixes)
	logger.Debug("applied fixes",
		logging.FieldApplied, len(out.Outcome.Applied),
		logging.FieldRejected, len(out.Outcome.Rejected))

	if !session.HasModifications() || opts.DryRun {
		return out
	}

	patched, err := session.Result()
	if err != nil {
		out.Err = fmt.Errorf("render %s: %w", path, err)
		return out
	}

	if opts.Backups.Enabled {
		if _, err := fsutil.CreateBackup(ctx, path, opts.Backups); err != nil {
			out.Err = fmt.Errorf("back up %s: %w", path, err)
			return out
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(patched), info.Mode)
	if err != nil {
		out.Err = fmt.Errorf("write %s: %w", path, err)
		return out
	}
	out.Written = written
	if written {
		logger.Debug("rewrote file")
	}
	return out
}
