package main

import (
	"context"
	"fmt"
	"os"

	"github.com/math-a3k/pocompile/cmd/bundle"
	"github.com/math-a3k/pocompile/cmd/cache"
	"github.com/math-a3k/pocompile/cmd/compile"
	"github.com/math-a3k/pocompile/cmd/init_project"
	"github.com/math-a3k/pocompile/cmd/list"
	"github.com/math-a3k/pocompile/cmd/stats"
	"github.com/math-a3k/pocompile/cmd/watch"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "pocompile",
		Usage:   "compiler and toolbox for gettext PO message catalogs",
		Version: "0.1.0",
		Commands: []*cli.Command{
			compile.Cmd(),
			watch.Cmd(),
			list.Cmd(),
			stats.Cmd(),
			bundle.Cmd(),
			cache.Cmd(),
			init_project.Cmd(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
