package compile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/msgfmt"
	"github.com/math-a3k/pocompile/pofile"
	"github.com/schollz/progressbar/v3"
)

// ErrCompileFailed is returned when at least one catalog could not be
// compiled. Details are logged as they happen.
var ErrCompileFailed = errors.New("compilation generated one or more errors")

type Options struct {
	JobCount   int
	UseFuzzy   bool
	DryRun     bool
	Force      bool
	NoProgress bool
}

// Summary counts the outcomes of one compile run.
type Summary struct {
	Compiled int
	UpToDate int
	Failed   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d compiled, %d up to date, %d failed", s.Compiled, s.UpToDate, s.Failed)
}

type taskResult struct {
	cat      catalog.Catalog
	upToDate bool
	err      error
}

// Run compiles all given catalogs on a worker pool. Catalogs that fail do
// not stop the others, the run keeps going and reports ErrCompileFailed at
// the end.
func Run(ctx context.Context, runner *msgfmt.Runner, cache *Cache, catalogs []catalog.Catalog, options Options) (*Summary, error) {
	summary := &Summary{}

	if options.JobCount <= 0 {
		options.JobCount = runtime.NumCPU()
	}

	targets := checkCatalogs(catalogs, options, summary)
	if len(targets) == 0 {
		if summary.Failed > 0 {
			return summary, ErrCompileFailed
		}
		return summary, nil
	}

	taskChan := make(chan catalog.Catalog, options.JobCount)
	resultChan := make(chan taskResult, options.JobCount)

	go func() {
		for _, cat := range targets {
			taskChan <- cat
		}
		close(taskChan)
	}()

	for i := 0; i < options.JobCount; i++ {
		go func() {
			for cat := range taskChan {
				resultChan <- compileOne(ctx, runner, cache, options, cat)
			}
		}()
	}

	var bar *progressbar.ProgressBar
	if options.NoProgress {
		bar = progressbar.DefaultSilent(int64(len(targets)))
	} else {
		bar = progressbar.Default(int64(len(targets)))
	}

	finishedCnt := 0
	for result := range resultChan {
		bar.Add(1)

		switch {
		case result.err != nil:
			log.Errorf("%s", result.err)
			summary.Failed++
		case result.upToDate:
			log.Debugf("up to date: %s", result.cat.POPath)
			summary.UpToDate++
		default:
			log.Debugf("compiled: %s", result.cat.POPath)
			summary.Compiled++
		}

		finishedCnt++
		if finishedCnt >= len(targets) {
			break
		}
	}

	if summary.Failed > 0 {
		return summary, ErrCompileFailed
	}

	return summary, nil
}

// checkCatalogs filters out catalogs that must not reach msgfmt. Catalogs
// with a byte order mark fail individually, an unwritable target location
// fails all catalogs sharing that root. The writability probe touches the
// filesystem and is skipped on dry runs.
func checkCatalogs(catalogs []catalog.Catalog, options Options, summary *Summary) []catalog.Catalog {
	targets := []catalog.Catalog{}
	probed := map[string]bool{}
	probeFailed := map[string]bool{}

	for _, cat := range catalogs {
		if probeFailed[cat.Root] {
			summary.Failed++
			continue
		}

		hasBOM, err := pofile.HasBOM(cat.POPath)
		if err != nil {
			log.Errorf("failed to inspect %s: %s", cat.POPath, err)
			summary.Failed++
			continue
		}
		if hasBOM {
			log.Errorf("file %s starts with a byte order mark, only plain UTF-8 catalogs can be compiled", cat.POPath)
			summary.Failed++
			continue
		}

		if !options.DryRun && !probed[cat.Root] {
			probed[cat.Root] = true

			if !isWritable(cat.MOPath()) {
				log.Errorf("catalogs under %s are in a location that is not writable, compiled files will not be updated", filepath.Dir(cat.POPath))
				probeFailed[cat.Root] = true
				summary.Failed++
				continue
			}
		}

		targets = append(targets, cat)
	}

	return targets
}

func compileOne(ctx context.Context, runner *msgfmt.Runner, cache *Cache, options Options, cat catalog.Catalog) taskResult {
	entry, err := Fingerprint(cat)
	if err != nil {
		return taskResult{cat: cat, err: err}
	}

	entry.MsgfmtVersion = runner.Version
	entry.UseFuzzy = options.UseFuzzy

	if !options.Force && cache.IsFresh(entry) {
		return taskResult{cat: cat, upToDate: true}
	}

	data, err := runner.Compile(ctx, cat.POPath, options.UseFuzzy)
	if err != nil {
		return taskResult{cat: cat, err: err}
	}

	if options.DryRun {
		return taskResult{cat: cat}
	}

	if err := installMO(cat.MOPath(), data); err != nil {
		return taskResult{cat: cat, err: err}
	}

	cache.Record(entry)

	return taskResult{cat: cat}
}
