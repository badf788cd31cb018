package ssh

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "VBoxManage", want: "VBoxManage"},
		{in: "/usr/bin/VBoxManage", want: "/usr/bin/VBoxManage"},
		{in: "", want: "''"},
		{in: "my vm", want: "'my vm'"},
		{in: "it's", want: `'it'\''s'`},
		{in: "$(rm -rf /)", want: "'$(rm -rf /)'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellQuote(tt.in))
		})
	}
}

func TestParseTarget(t *testing.T) {
	user, host, port, err := ParseTarget("admin@vbox-host:2200")
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "vbox-host", host)
	assert.Equal(t, "2200", port)

	user, host, port, err = ParseTarget("vbox-host")
	require.NoError(t, err)
	assert.Empty(t, user)
	assert.Equal(t, "vbox-host", host)
	assert.Empty(t, port)

	_, _, _, err = ParseTarget("")
	assert.Error(t, err)

	_, _, _, err = ParseTarget("admin@")
	assert.Error(t, err)
}

func TestNewSshClientWithPassword(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	client, err := NewSshClient("vbox-host", "", SshAuthorization{User: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "vbox-host:22", client.BaseAddress())
	assert.Equal(t, "vbox-host", client.Host())
	assert.Equal(t, "admin", client.Auth.User)
}

func TestNewSshClientWithoutAuth(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	_, err := NewSshClient("vbox-host", "22", SshAuthorization{User: "admin"})
	assert.Error(t, err)
}

func TestNewSshClientRejectsBadKeyFile(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	keyFile := filepath.Join(t.TempDir(), "id_rsa")
	require.NoError(t, os.WriteFile(keyFile, []byte("not a key"), 0o600))

	_, err := NewSshClient("vbox-host", "22", SshAuthorization{User: "admin", KeyFile: keyFile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing key file")
}

func TestCloseReleasesAgentConnection(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs unix sockets")
	}

	sock := filepath.Join(t.TempDir(), "agent.sock")
	listener, err := net.Listen("unix", sock)
	require.NoError(t, err)
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	t.Setenv("SSH_AUTH_SOCK", sock)
	client, err := NewSshClient("vbox-host", "22", SshAuthorization{User: "admin", Password: "secret"})
	require.NoError(t, err)

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(5 * time.Second):
		t.Fatal("agent socket was never dialled")
	}
	defer server.Close()

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err = server.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}
