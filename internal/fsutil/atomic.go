// Package fsutil holds small filesystem helpers shared by the writers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileMode is the permission requested for written files before the umask
// is applied, matching os.Create.
const FileMode os.FileMode = 0o666

// WriteAtomic creates path by writing to a temporary file and renaming it
// into place after write returns nil. On any error the temporary file is
// removed and path is left untouched.
func WriteAtomic(path string, write func(f *os.File) error) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(FileMode))
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() { _ = pf.Cleanup() }()

	if err := write(pf.File); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// EnsureExt appends ext (including the dot) when path does not already end
// with it.
func EnsureExt(path, ext string) string {
	if filepath.Ext(path) == ext {
		return path
	}
	return path + ext
}
