package localclient

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandReturnsTrimmedStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}

	out, err := NewLocalClient().RunCommand("sh", []string{"-c", "printf 'hello\\n'"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunCommandReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}

	_, err := NewLocalClient().RunCommand("sh", []string{"-c", "echo 'VBoxManage: error: boom' >&2; echo more >&2; exit 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VBoxManage: error: boom")
	assert.NotContains(t, err.Error(), "more")
}

func TestRunCommandMissingExecutable(t *testing.T) {
	_, err := NewLocalClient().RunCommand("vboxctl-does-not-exist", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vboxctl-does-not-exist")
}

func TestHostIsEmpty(t *testing.T) {
	assert.Equal(t, "", NewLocalClient().Host())
}

func TestRunCommandForcesCLocale(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}

	out, err := NewLocalClient().RunCommand("sh", []string{"-c", "echo $LC_ALL"})
	require.NoError(t, err)
	assert.Equal(t, "C", out)
}
