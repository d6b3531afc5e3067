package cache

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/database"
	"github.com/math-a3k/pocompile/database/data_model"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "compile cache management utility",
		Commands: []*cli.Command{
			subcmdList(),
			subcmdClear(),
			subcmdExport(),
			subcmdMigrate(),
		},
	}
}

func projectFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "path of project settings file",
		Value:   project.DefaultFileName,
	}
}

func dbPathArg(dbPath *string) cli.Argument {
	return &cli.StringArg{
		Name:        "dbpath",
		UsageText:   "<db>",
		Destination: dbPath,
		Max:         1,
	}
}

// openCacheDB resolves the cache database location, explicit path first,
// project settings second.
func openCacheDB(cmd *cli.Command, dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		info, err := project.ReadInfoOr(cmd.String("project"))
		if err != nil {
			return nil, err
		}

		dbPath = info.CachePath
	}

	if dbPath == "" {
		return nil, fmt.Errorf("no cache database configured, set cache_path in %s or pass a database path", project.DefaultFileName)
	}

	return database.Open(dbPath)
}

func subcmdList() *cli.Command {
	var dbPath string

	return &cli.Command{
		Name:      "list",
		Usage:     "print recorded compilations",
		Flags:     []cli.Flag{projectFlag()},
		Arguments: []cli.Argument{dbPathArg(&dbPath)},
		Action: func(_ context.Context, cmd *cli.Command) error {
			db, err := openCacheDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			entries := []data_model.CompileEntry{}
			result := db.Order("po_path").Find(&entries)
			if result.Error != nil {
				return fmt.Errorf("failed to read cache entries: %s", result.Error)
			}

			if len(entries) == 0 {
				log.Info("cache is empty")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf(
					"%s\n    locale %s, domain %s, compiled %s with %s\n",
					entry.POPath,
					entry.Locale, entry.Domain,
					entry.UpdatedAt.Format("2006-01-02 15:04:05"),
					entry.MsgfmtVersion,
				)
			}

			return nil
		},
	}
}

func subcmdClear() *cli.Command {
	var dbPath string

	return &cli.Command{
		Name:      "clear",
		Usage:     "drop all recorded compilations, the next run recompiles everything",
		Flags:     []cli.Flag{projectFlag()},
		Arguments: []cli.Argument{dbPathArg(&dbPath)},
		Action: func(_ context.Context, cmd *cli.Command) error {
			db, err := openCacheDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&data_model.CompileEntry{})
			if result.Error != nil {
				return fmt.Errorf("failed to clear cache: %s", result.Error)
			}

			log.Infof("removed %d cache entries", result.RowsAffected)

			return nil
		},
	}
}

func subcmdExport() *cli.Command {
	var dbPath string
	var csvFilePath string

	return &cli.Command{
		Name:  "export",
		Usage: "export cache records as CSV",
		Flags: []cli.Flag{projectFlag()},
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "csv-file",
				UsageText:   "<csv>",
				Destination: &csvFilePath,
				Min:         1,
				Max:         1,
			},
			dbPathArg(&dbPath),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			db, err := openCacheDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.ExportCSV(db, &data_model.CompileEntry{}, csvFilePath)
		},
	}
}

func subcmdMigrate() *cli.Command {
	var dbPath string

	return &cli.Command{
		Name:      "migrate",
		Usage:     "auto migrate cache database schema",
		Flags:     []cli.Flag{projectFlag()},
		Arguments: []cli.Argument{dbPathArg(&dbPath)},
		Action: func(_ context.Context, cmd *cli.Command) error {
			db, err := openCacheDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.Migrate(db)
		},
	}
}
