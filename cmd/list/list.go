package list

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/catalog"
	"github.com/math-a3k/pocompile/common"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "list",
		Usage: "list locales found in the project tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "path of project settings file",
				Value:   project.DefaultFileName,
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "glob pattern of directories to skip while scanning, can be given multiple times",
			},
			&cli.BoolFlag{
				Name:    "with-system",
				Aliases: []string{"m"},
				Usage:   "include catalogs under the configured system directory",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print locale list as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print catalog files of each locale",
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

	withSystem bool
	asJSON     bool
	verbose    bool
}

func getOptionsFromCmd(cmd *cli.Command) (options, error) {
	info, err := project.ReadInfoOr(cmd.String("project"))
	if err != nil {
		return options{}, err
	}

	info.Ignore = append(info.Ignore, cmd.StringSlice("ignore")...)

	options := options{
		info: info,

		withSystem: cmd.Bool("with-system"),
		asJSON:     cmd.Bool("json"),
		verbose:    cmd.Bool("verbose"),
	}

	return options, nil
}

type localeReport struct {
	catalog.LocaleInfo

	Catalogs int      `json:"catalogs"`
	POPaths  []string `json:"po,omitempty"`
}

func cmdMain(options options) error {
	result, err := catalog.Scan(catalog.ScanOptions{
		ProjectRoot: options.info.RootDir,
		LocalePaths: options.info.LocalePaths,
		SystemDir:   options.info.SystemDir,
		WithSystem:  options.withSystem,
		Ignore:      options.info.Ignore,
	})
	if err != nil {
		return err
	}

	if len(result.Locales) == 0 {
		log.Warnf("no locale found under %s", options.info.RootDir)
		return nil
	}

	sysLocale, err := catalog.SystemLocale()
	if err != nil {
		log.Debugf("can't detect system locale: %s", err)
	}

	byLocale := map[string][]catalog.Catalog{}
	for _, cat := range result.Catalogs {
		byLocale[cat.Locale] = append(byLocale[cat.Locale], cat)
	}

	reports := []localeReport{}
	for _, info := range catalog.DescribeLocales(result.Locales, sysLocale) {
		report := localeReport{
			LocaleInfo: info,
			Catalogs:   len(byLocale[info.Code]),
		}

		if options.asJSON || options.verbose {
			for _, cat := range byLocale[info.Code] {
				report.POPaths = append(report.POPaths, cat.POPath)
			}
		}

		reports = append(reports, report)
	}

	if options.asJSON {
		payload := struct {
			Roots   []string       `json:"roots"`
			Locales []localeReport `json:"locales"`
		}{
			Roots:   result.Roots,
			Locales: reports,
		}

		data, err := json.MarshalIndent(payload, "", "    ")
		if err != nil {
			return fmt.Errorf("JSON conversion failed: %s", err)
		}

		fmt.Println(string(data))

		return nil
	}

	for _, root := range result.Roots {
		fmt.Println("root: " + root)
	}
	fmt.Println()

	for _, report := range reports {
		mark := ""
		if report.IsSystem {
			mark = " [system]"
		}

		fmt.Printf(
			"%-16s %-28s %2d catalogs%s\n",
			report.Code, common.GetStrOr(report.Name, "unknown"), report.Catalogs, mark,
		)

		if options.verbose {
			for _, poPath := range report.POPaths {
				fmt.Println("    " + poPath)
			}
		}
	}

	return nil
}
