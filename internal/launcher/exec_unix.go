//go:build unix

package launcher

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func launch(path string, args []string) error {
	argv := append([]string{filepath.Base(path)}, args...)
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return errors.Wrapf(err, "executing %s", path)
	}
	// unreachable, Exec only returns on failure
	return nil
}
