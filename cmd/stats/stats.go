package stats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/pofile"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "stats",
		Usage: "report translation progress of PO catalogs",
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
				Usage:   "locale to report on, can be given multiple times, default is all locales found",
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
				Name:  "mine",
				Usage: "only report catalogs matching the system locale",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print statistics as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			options, err := getOptionsFromCmd(cmd)
			if err != nil {
				return err
			}

			return cmdMain(options)
		},
	}

	return cmd
}

type options struct {
	info *project.Info

	locales []string
	exclude []string

	mine   bool
	asJSON bool
}

func getOptionsFromCmd(cmd *cli.Command) (options, error) {
	info, err := project.ReadInfoOr(cmd.String("project"))
	if err != nil {
		return options{}, err
	}

	info.Ignore = append(info.Ignore, cmd.StringSlice("ignore")...)

	options := options{
		info: info,

		locales: cmd.StringSlice("locale"),
		exclude: cmd.StringSlice("exclude"),

		mine:   cmd.Bool("mine"),
		asJSON: cmd.Bool("json"),
	}

	return options, nil
}

type catalogReport struct {
	Path   string `json:"po"`
	Locale string `json:"locale,omitempty"`
	Domain string `json:"domain"`

	pofile.Stats

	Percent float64 `json:"percent"`
}

func cmdMain(options options) error {
	result, err := catalog.Scan(catalog.ScanOptions{
		ProjectRoot: options.info.RootDir,
		LocalePaths: options.info.LocalePaths,
		Ignore:      options.info.Ignore,
		Locales:     options.locales,
		Exclude:     options.exclude,
	})
	if err != nil {
		return err
	}

	if len(result.Catalogs) == 0 {
		log.Warnf("no catalog found under %s", options.info.RootDir)
		return nil
	}

	if options.mine {
		sysLocale, err := catalog.SystemLocale()
		if err != nil {
			return fmt.Errorf("failed to detect system locale: %s", err)
		}

		kept := []catalog.Catalog{}
		for _, cat := range result.Catalogs {
			if catalog.MatchesSystem(cat.Locale, sysLocale) {
				kept = append(kept, cat)
			}
		}
		result.Catalogs = kept

		if len(result.Catalogs) == 0 {
			log.Warnf("no catalog for system locale %s", sysLocale)
			return nil
		}
	}

	reports := []catalogReport{}
	total := pofile.Stats{}
	failedCnt := 0

	for _, cat := range result.Catalogs {
		file, err := pofile.ParseFile(cat.POPath)
		if err != nil {
			log.Errorf("%s", err)
			failedCnt++
			continue
		}

		stats := file.Stats()
		total.Translated += stats.Translated
		total.Fuzzy += stats.Fuzzy
		total.Untranslated += stats.Untranslated

		reports = append(reports, catalogReport{
			Path:   cat.POPath,
			Locale: cat.Locale,
			Domain: cat.Domain,

			Stats: stats,

			Percent: stats.Percent(),
		})
	}

	if options.asJSON {
		payload := struct {
			Catalogs []catalogReport `json:"catalogs"`
			Total    pofile.Stats    `json:"total"`
		}{
			Catalogs: reports,
			Total:    total,
		}

		data, err := json.MarshalIndent(payload, "", "    ")
		if err != nil {
			return fmt.Errorf("JSON conversion failed: %s", err)
		}

		fmt.Println(string(data))
	} else {
		for _, report := range reports {
			fmt.Printf("%s: %s (%.1f%%)\n", report.Path, report.Stats, report.Percent)
		}

		if len(reports) > 1 {
			fmt.Printf("total: %s (%.1f%%)\n", total, total.Percent())
		}
	}

	if failedCnt > 0 {
		return fmt.Errorf("failed to read %d catalogs", failedCnt)
	}

	return nil
}
