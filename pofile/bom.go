package pofile

import (
	"bytes"
	"fmt"
	"os"
)

var bomMarks = [][]byte{
	{0xef, 0xbb, 0xbf}, // UTF-8
	{0xff, 0xfe},       // UTF-16 LE
	{0xfe, 0xff},       // UTF-16 BE
}

// HasBOM checks if file at given path starts with a byte order mark. gettext
// only accepts catalogs encoded as UTF-8 without BOM, marked files have to be
// rejected before handing them to msgfmt.
func HasBOM(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open catalog %s: %s", path, err)
	}
	defer file.Close()

	sample := make([]byte, 4)
	n, _ := file.Read(sample)
	sample = sample[:n]

	for _, mark := range bomMarks {
		if bytes.HasPrefix(sample, mark) {
			return true, nil
		}
	}

	return false, nil
}
