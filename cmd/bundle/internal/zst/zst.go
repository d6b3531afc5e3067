package zst

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
	"github.com/math-a3k/pocompile/cmd/bundle/internal/mofiles"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func defaultOutputName() string {
	return "locales-" + time.Now().Format("20060102-150405") + ".tar.zst"
}

func Cmd() *cli.Command {
	var outputName string

	cmd := &cli.Command{
		Name:  "zst",
		Usage: "pack compiled catalogs into a zstd compressed tarball",
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

	zstWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("failed to init zstd stream: %s", err)
	}

	tarWriter := tar.NewWriter(zstWriter)

	bar := progressbar.Default(int64(len(targets)))
	for _, target := range targets {
		if err := appendFile(tarWriter, target); err != nil {
			return err
		}

		bar.Add(1)
		log.Debugf("packed: %s", target.ArchivePath)
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish archive %s: %s", outputName, err)
	}
	if err := zstWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish compression %s: %s", outputName, err)
	}

	log.Infof("%d catalogs packed into %s", len(targets), outputName)

	return file.Close()
}

func appendFile(tarWriter *tar.Writer, target mofiles.Target) error {
	info, err := os.Stat(target.FilePath)
	if err != nil {
		return fmt.Errorf("failed to access compiled catalog %s: %s", target.FilePath, err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build archive header for %s: %s", target.FilePath, err)
	}
	header.Name = target.ArchivePath

	if err := tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write archive header %s: %s", target.ArchivePath, err)
	}

	file, err := os.Open(target.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open compiled catalog %s: %s", target.FilePath, err)
	}
	defer file.Close()

	if _, err := io.Copy(tarWriter, file); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %s", target.ArchivePath, err)
	}

	return nil
}
