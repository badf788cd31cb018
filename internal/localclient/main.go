// Package localclient runs VBoxManage on this machine.
package localclient

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Command is one invocation. Env is appended to the current environment.
type Command struct {
	Command string
	Args    []string
	Env     []string
}

type LocalClient struct {
	env []string
}

// NewLocalClient forces the C locale so diagnostics and machine readable
// output are not translated.
func NewLocalClient() *LocalClient {
	return &LocalClient{env: []string{"LC_ALL=C"}}
}

func (l *LocalClient) RunCommand(command string, arguments []string) (string, error) {
	result, err := run(Command{
		Command: command,
		Args:    arguments,
		Env:     l.env,
	})
	return result.Stdout, err
}

func (l *LocalClient) Host() string {
	return ""
}

type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func run(command Command) (result, error) {
	cmd := exec.Command(command.Command, command.Args...)
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := result{
		Stdout: strings.TrimSuffix(stdout.String(), "\n"),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		return res, nil
	}
	if res.Stderr != "" {
		return res, errors.Errorf("%s, err: %v", firstLine(res.Stderr), runErr)
	}
	return res, errors.Wrapf(runErr, "running %s", command.Command)
}

// VBoxManage prints multi-line diagnostics; the first line carries the reason.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
