package zip

import (
	"archive/zip"
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/cmd/bundle/internal/mofiles"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func defaultOutputName() string {
	return "locales-" + time.Now().Format("20060102-150405") + ".zip"
}

func Cmd() *cli.Command {
	var outputName string

	cmd := &cli.Command{
		Name:  "zip",
		Usage: "pack compiled catalogs into a ZIP archive",
		Flags: mofiles.Flags(),
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "output",
				UsageText:   "<output>",
				Destination: &outputName,
				Max:         1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			options, err := mofiles.GetOptionsFromCmd(cmd)
			if err != nil {
				return err
			}

			return cmdMain(ctx, options, outputName)
		},
	}

	return cmd
}

func cmdMain(ctx context.Context, options mofiles.Options, outputName string) error {
	if outputName == "" {
		outputName = defaultOutputName()
	}

	targets, err := mofiles.Collect(ctx, options)
	if err != nil {
		return err
	}

	file, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %s", outputName, err)
	}
	defer file.Close()

	bufWriter := bufio.NewWriter(file)
	zipWriter := zip.NewWriter(bufWriter)

	bar := progressbar.Default(int64(len(targets)))
	for _, target := range targets {
		data, err := os.ReadFile(target.FilePath)
		if err != nil {
			return fmt.Errorf("failed to read compiled catalog %s: %s", target.FilePath, err)
		}

		writer, err := zipWriter.Create(target.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %s", target.ArchivePath, err)
		}

		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %s", target.ArchivePath, err)
		}

		bar.Add(1)
		log.Debugf("packed: %s", target.ArchivePath)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish archive %s: %s", outputName, err)
	}
	if err := bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush archive %s: %s", outputName, err)
	}

	log.Infof("%d catalogs packed into %s", len(targets), outputName)

	return file.Close()
}
