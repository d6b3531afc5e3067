// Package mofiles gathers compiled catalogs for the bundle subcommands.
package mofiles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/common"
	"github.com/math-a3k/pocompile/compile"
	"github.com/math-a3k/pocompile/msgfmt"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

// Target is one compiled catalog to pack, with the path it takes inside the
// archive.
type Target struct {
	ArchivePath string
	FilePath    string
}

type Options struct {
	Info *project.Info

	Locales []string
	Exclude []string

	UseFuzzy  bool
	NoCompile bool

	JobCnt int
}

// Flags is the flag set shared by all bundle formats.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "path of project settings file",
			Value:   project.DefaultFileName,
		},
		&cli.StringSliceFlag{
			Name:    "locale",
			Aliases: []string{"l"},
			Usage:   "locale to pack, can be given multiple times, default is all locales found",
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
			Name:  "no-compile",
			Usage: "pack existing MO files without recompiling first",
		},
		&cli.BoolFlag{
			Name:    "use-fuzzy",
			Aliases: []string{"f"},
			Usage:   "compile fuzzy translations as well",
		},
		&cli.IntFlag{
			Name:    "job",
			Aliases: []string{"j"},
			Usage:   "compile job count, defaults to project setting",
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
	}
}

func GetOptionsFromCmd(cmd *cli.Command) (Options, error) {
	common.SetupLogLevel(cmd.Bool("verbose"), cmd.Bool("quiet"))

	info, err := project.ReadInfoOr(cmd.String("project"))
	if err != nil {
		return Options{}, err
	}

	info.Ignore = append(info.Ignore, cmd.StringSlice("ignore")...)

	options := Options{
		Info: info,

		Locales: cmd.StringSlice("locale"),
		Exclude: cmd.StringSlice("exclude"),

		UseFuzzy:  cmd.Bool("use-fuzzy") || info.UseFuzzy,
		NoCompile: cmd.Bool("no-compile"),

		JobCnt: common.GetIntOr(int(cmd.Int("job")), info.JobCount),
	}

	return options, nil
}

// Collect compiles the project unless told otherwise, then returns the
// compiled catalogs laid out as `<locale>/LC_MESSAGES/<domain>.mo`. Catalogs
// found outside that layout keep their path relative to the catalog root.
func Collect(ctx context.Context, options Options) ([]Target, error) {
	result, err := catalog.Scan(catalog.ScanOptions{
		ProjectRoot: options.Info.RootDir,
		LocalePaths: options.Info.LocalePaths,
		Ignore:      options.Info.Ignore,
		Locales:     options.Locales,
		Exclude:     options.Exclude,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Catalogs) == 0 {
		return nil, fmt.Errorf("no catalog found under %s", options.Info.RootDir)
	}

	if !options.NoCompile {
		err := compileTargets(ctx, options, result)
		if err != nil {
			return nil, err
		}
	}

	targets := []Target{}
	seen := map[string]bool{}

	for _, cat := range result.Catalogs {
		moPath := cat.MOPath()
		if _, err := os.Stat(moPath); err != nil {
			log.Warnf("no compiled catalog for %s, skipping", cat.POPath)
			continue
		}

		archivePath := archivePathOf(cat, moPath)
		if seen[archivePath] {
			log.Warnf("archive already has %s, skipping %s", archivePath, moPath)
			continue
		}
		seen[archivePath] = true

		targets = append(targets, Target{
			ArchivePath: archivePath,
			FilePath:    moPath,
		})
	}

	if len(targets) == 0 {
		return nil, errors.New("no compiled catalog to bundle")
	}

	return targets, nil
}

func compileTargets(ctx context.Context, options Options, result *catalog.ScanResult) error {
	runner, err := msgfmt.NewRunner(ctx, options.Info.MsgfmtPath)
	if err != nil {
		return err
	}

	var cache *compile.Cache
	if options.Info.CachePath != "" {
		cache, err = compile.OpenCache(options.Info.CachePath)
		if err != nil {
			log.Warnf("compile cache unavailable: %s", err)
		} else {
			defer cache.Close()
		}
	}

	_, err = compile.Run(ctx, runner, cache, result.Catalogs, compile.Options{
		JobCount:   options.JobCnt,
		UseFuzzy:   options.UseFuzzy,
		NoProgress: true,
	})

	return err
}

func archivePathOf(cat catalog.Catalog, moPath string) string {
	if cat.Locale != "" {
		return path.Join(cat.Locale, catalog.MessagesDirName, filepath.Base(moPath))
	}

	rel, err := filepath.Rel(cat.Root, moPath)
	if err != nil {
		return filepath.Base(moPath)
	}

	return filepath.ToSlash(rel)
}
