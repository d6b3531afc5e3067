// Package catalog discovers gettext message catalogs in a project tree.
package catalog

import (
	"path/filepath"
	"strings"
)

const (
	// PO catalogs live in <root>/<locale>/LC_MESSAGES/<domain>.po
	MessagesDirName = "LC_MESSAGES"

	// directory name that marks a catalog root while walking a project tree
	LocaleDirName = "locale"
)

// Catalog is one discovered PO file.
type Catalog struct {
	Root   string `json:"root"`   // catalog root directory it was found under
	POPath string `json:"po"`     // absolute path of the source catalog
	Locale string `json:"locale"` // locale code from the directory layout, may be empty
	Domain string `json:"domain"` // catalog file name without extension
}

// MOPath is where the compiled catalog goes, next to its source.
func (c Catalog) MOPath() string {
	return strings.TrimSuffix(c.POPath, filepath.Ext(c.POPath)) + ".mo"
}

// RelPath is the catalog path relative to its root, used for archive layouts
// and log lines.
func (c Catalog) RelPath() string {
	rel, err := filepath.Rel(c.Root, c.POPath)
	if err != nil {
		return filepath.Base(c.POPath)
	}
	return rel
}

// FromPOPath builds a Catalog for a PO file found under given root, deriving
// locale and domain from the path layout.
func FromPOPath(root, poPath string) Catalog {
	cat := Catalog{
		Root:   root,
		POPath: poPath,
		Domain: strings.TrimSuffix(filepath.Base(poPath), filepath.Ext(poPath)),
	}

	rel, err := filepath.Rel(root, poPath)
	if err != nil {
		return cat
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) >= 3 && parts[1] == MessagesDirName {
		cat.Locale = parts[0]
	}

	return cat
}
