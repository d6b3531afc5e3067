package init_project

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/project"
	"github.com/urfave/cli/v3"
)

func Cmd() *cli.Command {
	var dir string

	cmd := &cli.Command{
		Name:  "init",
		Usage: "initialize a project settings file in given directory",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "directory",
				UsageText:   "<path>",
				Destination: &dir,
				Max:         1,
				Value:       "./",
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return cmdMain(dir)
		},
	}

	return cmd
}

func cmdMain(dir string) error {
	outputName := filepath.Join(dir, project.DefaultFileName)

	info, err := readExistingInfo(outputName)
	if err != nil {
		log.Infof("failed to read existing project file: %s, go on processing any way", err)
	}

	info.SetupDefaultValues()

	err = info.SaveFile(outputName)
	if err != nil {
		return err
	}

	log.Infof("project settings written to %s", outputName)

	return nil
}

// Read project info from existing settings file. Values already in the file
// survive re-initialization untouched.
func readExistingInfo(filename string) (project.Info, error) {
	info := project.Info{}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return info, nil
		}
		return info, err
	}

	err = json.Unmarshal(data, &info)
	if err != nil {
		return info, err
	}

	return info, nil
}
