package watch

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/common"
	"github.com/math-a3k/pocompile/compile"
	"github.com/math-a3k/pocompile/msgfmt"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "watch",
		Usage: "recompile catalogs whenever their PO files change",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "path of project settings file",
				Value:   project.DefaultFileName,
			},
			&cli.StringSliceFlag{
				Name:    "locale",
				Aliases: []string{"l"},
				Usage:   "locale to process, can be given multiple times, default is all locales found",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "locale to skip, can be given multiple times",
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "glob pattern of directories to skip while scanning, can be given multiple times",
			},
			&cli.BoolFlag{
				Name:    "use-fuzzy",
				Aliases: []string{"f"},
				Usage:   "compile fuzzy translations as well",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "do not read or update the compile cache",
			},
			&cli.IntFlag{
				Name:    "job",
				Aliases: []string{"j"},
				Usage:   "compile job count, defaults to project setting",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "time to wait after the last change before recompiling",
				Value: 500 * time.Millisecond,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print per catalog detail",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only print warnings and errors",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			options, err := getOptionsFromCmd(cmd)
			if err != nil {
				return err
			}

			return cmdMain(ctx, options)
		},
	}

	return cmd
}

type options struct {
	info *project.Info

	locales []string
	exclude []string

	useFuzzy bool
	noCache  bool

	jobCnt   int
	debounce time.Duration
}

func getOptionsFromCmd(cmd *cli.Command) (options, error) {
	common.SetupLogLevel(cmd.Bool("verbose"), cmd.Bool("quiet"))

	info, err := project.ReadInfoOr(cmd.String("project"))
	if err != nil {
		return options{}, err
	}

	info.Ignore = append(info.Ignore, cmd.StringSlice("ignore")...)

	options := options{
		info: info,

		locales: cmd.StringSlice("locale"),
		exclude: cmd.StringSlice("exclude"),

		useFuzzy: cmd.Bool("use-fuzzy") || info.UseFuzzy,
		noCache:  cmd.Bool("no-cache"),

		jobCnt:   common.GetIntOr(int(cmd.Int("job")), info.JobCount),
		debounce: cmd.Duration("debounce"),
	}

	return options, nil
}

func cmdMain(ctx context.Context, options options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := msgfmt.NewRunner(ctx, options.info.MsgfmtPath)
	if err != nil {
		return err
	}

	var cache *compile.Cache
	if options.info.CachePath != "" && !options.noCache {
		cache, err = compile.OpenCache(options.info.CachePath)
		if err != nil {
			log.Warnf("compile cache unavailable: %s", err)
		} else {
			defer cache.Close()
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	roots := compileCatalogs(ctx, runner, cache, options, nil)
	watchDirTrees(watcher, roots)

	log.Infof("watching %d catalog directories, press Ctrl-C to stop", len(roots))

	var debounceChan <-chan time.Time
	changed := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watchDirTrees(watcher, []string{event.Name})
				}
			}

			if strings.HasSuffix(event.Name, ".po") {
				log.Debugf("change detected: %s", event.Name)
				changed[filepath.Clean(event.Name)] = struct{}{}
				debounceChan = time.After(options.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %s", err)

		case <-debounceChan:
			debounceChan = nil

			roots := compileCatalogs(ctx, runner, cache, options, changed)
			watchDirTrees(watcher, roots)

			changed = map[string]struct{}{}
		}
	}
}

// compileCatalogs rescans the project and compiles catalogs matching the
// changed set, or all of them when the set is nil. It returns catalog roots
// found by the scan. Compile failures keep the watch alive, the next change
// gets another chance.
func compileCatalogs(ctx context.Context, runner *msgfmt.Runner, cache *compile.Cache, options options, changed map[string]struct{}) []string {
	result, err := catalog.Scan(catalog.ScanOptions{
		ProjectRoot: options.info.RootDir,
		LocalePaths: options.info.LocalePaths,
		Ignore:      options.info.Ignore,
		Locales:     options.locales,
		Exclude:     options.exclude,
	})
	if err != nil {
		log.Errorf("catalog scan failed: %s", err)
		return nil
	}

	catalogs := result.Catalogs
	if changed != nil {
		catalogs = []catalog.Catalog{}
		for _, cat := range result.Catalogs {
			if _, ok := changed[filepath.Clean(cat.POPath)]; ok {
				catalogs = append(catalogs, cat)
			}
		}
	}

	if len(catalogs) == 0 {
		log.Warn("no catalog to compile")
		return result.Roots
	}

	summary, err := compile.Run(ctx, runner, cache, catalogs, compile.Options{
		JobCount:   options.jobCnt,
		UseFuzzy:   options.useFuzzy,
		NoProgress: true,
	})
	if err != nil {
		log.Errorf("%s", err)
	}
	if summary != nil {
		log.Infof("%s", summary)
	}

	return result.Roots
}

// watchDirTrees registers every directory under the given roots with the
// watcher. Watching an already watched directory again is harmless.
func watchDirTrees(watcher *fsnotify.Watcher, roots []string) {
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}

			if err := watcher.Add(path); err != nil {
				log.Warnf("failed to watch %s: %s", path, err)
			}

			return nil
		})
		if err != nil {
			log.Warnf("failed to walk %s: %s", root, err)
		}
	}
}
