package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/math-a3k/pocompile/common"
)

const DefaultFileName = "l10n.json"

// Represents localization settings of a project directory.
type Info struct {
	RootDir     string   `json:"root"`         // project root to scan for locale directories
	LocalePaths []string `json:"locale_paths"` // extra catalog roots outside the scanned tree
	SystemDir   string   `json:"system_dir"`   // catalogs bundled with the application, compiled on demand only

	Ignore []string `json:"ignore"` // glob patterns of directories to skip while scanning

	MsgfmtPath string `json:"msgfmt_path"` // explicit msgfmt binary, empty means PATH lookup
	JobCount   int    `json:"job_count"`   // compile worker count
	UseFuzzy   bool   `json:"use_fuzzy"`   // pass fuzzy translations to msgfmt by default

	CachePath string `json:"cache_path"` // compile cache database, empty disables the cache
}

// ReadInfo loads project info from JSON file. Relative paths in the file are
// resolved against the directory containing it.
func ReadInfo(infoPath string) (*Info, error) {
	data, err := os.ReadFile(infoPath)
	if err != nil {
		return nil, fmt.Errorf("can't read project file %s: %s", infoPath, err)
	}

	info := &Info{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("unable to parse project data in %s: %s", infoPath, err)
	}

	info.SetupDefaultValues()

	infoDir := filepath.Dir(infoPath)

	info.RootDir = common.ResolveRelativePath(info.RootDir, infoDir)
	info.SystemDir = common.ResolveRelativePath(info.SystemDir, infoDir)
	info.CachePath = common.ResolveRelativePath(info.CachePath, infoDir)

	for i := range info.LocalePaths {
		info.LocalePaths[i] = common.ResolveRelativePath(info.LocalePaths[i], infoDir)
	}

	return info, nil
}

// ReadInfoOr behaves like ReadInfo, except a missing file yields default
// settings instead of an error. Commands other than `init` treat the project
// file as optional.
func ReadInfoOr(infoPath string) (*Info, error) {
	info, err := ReadInfo(infoPath)
	if err == nil {
		return info, nil
	}

	if _, statErr := os.Stat(infoPath); errors.Is(statErr, os.ErrNotExist) {
		info = &Info{}
		info.SetupDefaultValues()
		return info, nil
	}

	return nil, err
}

// SetupDefaultValues sets necessary default values for Info fields if them
// are still zero value of their type.
func (info *Info) SetupDefaultValues() {
	if info.RootDir == "" {
		info.RootDir = "./"
	}

	if info.LocalePaths == nil {
		info.LocalePaths = []string{}
	}

	if info.Ignore == nil {
		info.Ignore = []string{}
	}

	if info.JobCount <= 0 {
		info.JobCount = runtime.NumCPU()
	}
}

// Save project info struct to file.
func (info *Info) SaveFile(filename string) error {
	data, err := json.MarshalIndent(info, "", "    ")
	if err != nil {
		return fmt.Errorf("JSON conversion failed: %s", err)
	}

	err = os.WriteFile(filename, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write project file: %s", err)
	}

	return nil
}
