//go:build !unix

package launcher

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

func launch(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return errors.Wrapf(err, "running %s", path)
	}
	return nil
}
