// Package launcher hands the terminal to an interactive client such as
// ssh, rdesktop or vncviewer.
package launcher

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Session is the client to run. Path is looked up on PATH when it is not
// absolute.
type Session struct {
	Path string
	Args []string
}

func (s Session) String() string {
	return fmt.Sprintf("%s %v", s.Path, s.Args)
}

type Launcher interface {
	Launch(ctx context.Context, session Session) error
}

// ExitError carries the exit status of a client that ran as a child process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("client exited with status %d", e.Code)
}

// Exec replaces the current process with the client where the platform
// allows it and otherwise runs it attached to the terminal.
type Exec struct{}

func New() *Exec {
	return &Exec{}
}

func (e *Exec) Launch(ctx context.Context, session Session) error {
	path, err := exec.LookPath(session.Path)
	if err != nil {
		return errors.Wrapf(err, "%s not found", session.Path)
	}

	hclog.FromContext(ctx).Debug("handing terminal to client", "path", path, "args", session.Args)
	return launch(path, session.Args)
}
