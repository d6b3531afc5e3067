package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/math-a3k/pocompile/common"
)

// ScanOptions controls catalog discovery.
type ScanOptions struct {
	ProjectRoot string   // tree to walk for `locale` directories
	LocalePaths []string // extra catalog roots taken as-is
	SystemDir   string   // bundled catalog root, only used when WithSystem is set
	WithSystem  bool

	Ignore []string // glob patterns of directories to skip while walking

	Locales []string // locale codes to select, empty selects all found
	Exclude []string // locale codes to drop from the selection
}

// ScanResult is the outcome of a discovery run.
type ScanResult struct {
	Roots    []string  // existing catalog roots, absolute and sorted
	Locales  []string  // selected locale codes, sorted
	Catalogs []Catalog // catalogs of the selected locales, in root order
}

// Scan walks the project tree and gathers PO catalogs. Candidate roots are
// `<root>/locale`, `<root>/conf/locale`, every configured locale path and
// every directory named `locale` met while walking, minus ignored ones.
func Scan(opts ScanOptions) (*ScanResult, error) {
	if opts.ProjectRoot == "" {
		opts.ProjectRoot = "."
	}

	if _, err := os.Stat(opts.ProjectRoot); err != nil {
		return nil, fmt.Errorf("failed to access project root %s: %s", opts.ProjectRoot, err)
	}

	candidates := []string{
		filepath.Join(opts.ProjectRoot, "conf", LocaleDirName),
		filepath.Join(opts.ProjectRoot, LocaleDirName),
	}
	candidates = append(candidates, opts.LocalePaths...)

	walked, err := walkLocaleDirs(opts.ProjectRoot, opts.Ignore)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, walked...)

	roots := existingDirSet(candidates)

	// bundled catalogs take part only on request and only when the directory
	// is not already one of the project roots
	if opts.WithSystem && opts.SystemDir != "" {
		if abs, err := filepath.Abs(opts.SystemDir); err == nil {
			if _, ok := roots[abs]; !ok {
				if info, err := os.Stat(abs); err == nil && info.IsDir() {
					roots[abs] = struct{}{}
				} else {
					log.Warnf("system catalog directory is not usable: %s", opts.SystemDir)
				}
			}
		}
	}

	result := &ScanResult{
		Roots: make([]string, 0, len(roots)),
	}
	for root := range roots {
		result.Roots = append(result.Roots, root)
	}
	sort.Strings(result.Roots)

	result.Locales = selectLocales(result.Roots, opts.Locales, opts.Exclude)

	for _, root := range result.Roots {
		catalogs, err := collectCatalogs(root, result.Locales)
		if err != nil {
			return nil, err
		}
		result.Catalogs = append(result.Catalogs, catalogs...)
	}

	return result, nil
}

// walkLocaleDirs looks for directories named `locale` under root, pruning
// ignored subtrees.
func walkLocaleDirs(root string, ignore []string) ([]string, error) {
	found := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skip unreadable path %s: %s", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && rel != "." && common.IsIgnoredPath(rel, ignore) {
			return fs.SkipDir
		}

		if d.Name() == LocaleDirName {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project tree %s: %s", root, err)
	}

	return found, nil
}

// existingDirSet absolutizes candidates and keeps the ones that exist as
// directories.
func existingDirSet(candidates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(candidates))

	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}

		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}

		set[abs] = struct{}{}
	}

	return set
}

// selectLocales unions locale subdirectories of all roots, then applies
// include and exclude lists with set difference semantics.
func selectLocales(roots, include, exclude []string) []string {
	all := map[string]struct{}{}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				all[entry.Name()] = struct{}{}
			}
		}
	}

	selected := map[string]struct{}{}
	if len(include) > 0 {
		for _, code := range include {
			selected[code] = struct{}{}
		}
	} else {
		selected = all
	}

	for _, code := range exclude {
		delete(selected, code)
	}

	result := make([]string, 0, len(selected))
	for code := range selected {
		result = append(result, code)
	}
	sort.Strings(result)

	return result
}

// collectCatalogs gathers PO files of the selected locales under one root.
// With no locale selection the whole root is scanned, keeping catalogs that
// live outside the usual `<locale>/LC_MESSAGES` layout reachable.
func collectCatalogs(root string, locales []string) ([]Catalog, error) {
	dirs := []string{}
	if len(locales) > 0 {
		for _, locale := range locales {
			dirs = append(dirs, filepath.Join(root, locale, MessagesDirName))
		}
	} else {
		dirs = append(dirs, root)
	}

	catalogs := []Catalog{}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debugf("skip unreadable path %s: %s", path, err)
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".po") {
				return nil
			}

			catalogs = append(catalogs, FromPOPath(root, path))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog directory %s: %s", dir, err)
		}
	}

	return catalogs, nil
}
