package compile

import (
	"fmt"
	"os"
	"time"

	"github.com/google/renameio/v2"
)

// installMO writes a compiled catalog to its final location with an atomic
// rename, so that readers never observe a half written file.
func installMO(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("failed to create pending file for %s: %s", path, err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("failed to write compiled catalog %s: %s", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace compiled catalog %s: %s", path, err)
	}

	return nil
}

// isWritable probes whether a file location accepts writes. Probing touches
// the modification time of an existing file and leaves an empty one behind
// otherwise.
func isWritable(path string) bool {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
	if err != nil {
		return false
	}
	file.Close()

	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return false
	}

	return true
}
