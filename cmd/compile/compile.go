package compile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/common"
	"github.com/math-a3k/pocompile/compile"
	"github.com/math-a3k/pocompile/msgfmt"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	var targetDir string

	cmd := &cli.Command{
		Name:  "compile",
		Usage: "compile PO catalogs of a project into binary MO files",
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
				Usage:   "locale to process, e.g. de_AT, can be given multiple times, default is all locales found",
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
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "do everything except modifying the filesystem",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "recompile catalogs even when the cache reports them up to date",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "compile cache database path, overrides project settings",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "do not read or update the compile cache",
			},
			&cli.BoolFlag{
				Name:    "with-system",
				Aliases: []string{"m"},
				Usage:   "also compile catalogs under the configured system directory",
			},
			&cli.IntFlag{
				Name:    "job",
				Aliases: []string{"j"},
				Usage:   "compile job count, defaults to project setting",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "disable progress bar",
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
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "directory",
				UsageText:   "<path>",
				Destination: &targetDir,
				Max:         1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			options, err := getOptionsFromCmd(cmd, targetDir)
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

	useFuzzy   bool
	dryRun     bool
	force      bool
	noCache    bool
	withSystem bool
	noProgress bool

	jobCnt int
}

func getOptionsFromCmd(cmd *cli.Command, targetDir string) (options, error) {
	common.SetupLogLevel(cmd.Bool("verbose"), cmd.Bool("quiet"))

	info, err := project.ReadInfoOr(cmd.String("project"))
	if err != nil {
		return options{}, err
	}

	if targetDir != "" {
		info.RootDir = targetDir
	}
	if cachePath := cmd.String("cache"); cachePath != "" {
		info.CachePath = cachePath
	}
	info.Ignore = append(info.Ignore, cmd.StringSlice("ignore")...)

	options := options{
		info: info,

		locales: cmd.StringSlice("locale"),
		exclude: cmd.StringSlice("exclude"),

		useFuzzy:   cmd.Bool("use-fuzzy") || info.UseFuzzy,
		dryRun:     cmd.Bool("dry-run"),
		force:      cmd.Bool("force"),
		noCache:    cmd.Bool("no-cache"),
		withSystem: cmd.Bool("with-system"),
		noProgress: cmd.Bool("no-progress"),

		jobCnt: common.GetIntOr(int(cmd.Int("job")), info.JobCount),
	}

	return options, nil
}

func cmdMain(ctx context.Context, options options) error {
	if options.dryRun {
		log.Info("dry run requested, no files will be modified")
	}

	runner, err := msgfmt.NewRunner(ctx, options.info.MsgfmtPath)
	if err != nil {
		return err
	}
	log.Debugf("using %s (%s)", runner.BinPath, runner.Version)

	result, err := catalog.Scan(catalog.ScanOptions{
		ProjectRoot: options.info.RootDir,
		LocalePaths: options.info.LocalePaths,
		SystemDir:   options.info.SystemDir,
		WithSystem:  options.withSystem,
		Ignore:      options.info.Ignore,
		Locales:     options.locales,
		Exclude:     options.exclude,
	})
	if err != nil {
		return err
	}

	if len(result.Roots) == 0 {
		return fmt.Errorf("no locale directory found under %s, run from your project tree or set locale paths in %s", options.info.RootDir, project.DefaultFileName)
	}
	if len(result.Catalogs) == 0 {
		log.Warn("no catalog to compile")
		return nil
	}

	logCompileBanner(options, result)

	var cache *compile.Cache
	if options.info.CachePath != "" && !options.noCache && !options.dryRun {
		cache, err = compile.OpenCache(options.info.CachePath)
		if err != nil {
			log.Warnf("compile cache unavailable: %s", err)
		} else {
			defer cache.Close()
		}
	}

	summary, err := compile.Run(ctx, runner, cache, result.Catalogs, compile.Options{
		JobCount:   options.jobCnt,
		UseFuzzy:   options.useFuzzy,
		DryRun:     options.dryRun,
		Force:      options.force,
		NoProgress: options.noProgress,
	})
	if summary != nil {
		log.Infof("%s", summary)
	}

	return err
}

// logCompileBanner prints a banner indicating a new compile run starts.
func logCompileBanner(options options, result *catalog.ScanResult) {
	locales := "all"
	if len(result.Locales) > 0 {
		locales = strings.Join(result.Locales, " ")
	}

	msgs := []string{
		fmt.Sprintf("%-9s: %s", "root", options.info.RootDir),
		fmt.Sprintf("%-9s: %d", "dirs", len(result.Roots)),
		fmt.Sprintf("%-9s: %s", "locales", locales),
		fmt.Sprintf("%-9s: %d", "catalogs", len(result.Catalogs)),
		fmt.Sprintf("%-9s: %d", "jobs", options.jobCnt),
	}

	common.LogBannerMsg(msgs, 5)
}
