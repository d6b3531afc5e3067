package bundle

import (
	"github.com/math-a3k/pocompile/cmd/bundle/internal/zip"
	"github.com/math-a3k/pocompile/cmd/bundle/internal/zst"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "bundle",
		Usage: "pack compiled catalogs into a single deployment archive",
		Commands: []*cli.Command{
			zip.Cmd(),
			zst.Cmd(),
		},
	}

	return cmd
}
