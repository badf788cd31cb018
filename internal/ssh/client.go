package ssh

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjlapao/common-go/helper"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

type SshAuthorization struct {
	User           string
	Password       string
	PrivateKey     string
	KeyFile        string
	KnownHostsFile string
}

type SshClient struct {
	config   *ssh.ClientConfig
	HostName string
	Port     string
	Auth     SshAuthorization

	agentConn net.Conn
}

func NewSshClient(host, port string, auth SshAuthorization) (*SshClient, error) {
	sshClient := &SshClient{
		HostName: host,
		Port:     port,
		Auth:     auth,
	}

	var methods []ssh.AuthMethod
	switch {
	case sshClient.Auth.KeyFile != "":
		key, err := helper.ReadFromFile(sshClient.Auth.KeyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "reading key file %s", sshClient.Auth.KeyFile)
		}

		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing key file %s", sshClient.Auth.KeyFile)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	case sshClient.Auth.PrivateKey != "":
		signer, err := ssh.ParsePrivateKey([]byte(sshClient.Auth.PrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "parsing private key")
		}
		methods = append(methods, ssh.PublicKeys(signer))
	case sshClient.Auth.Password != "":
		methods = append(methods, ssh.Password(sshClient.Auth.Password))
	}

	// The agent is always offered last so an explicit key or password wins.
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			sshClient.agentConn = conn
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	if len(methods) == 0 {
		return nil, errors.New("no ssh authentication method available, set a key file, a password or run an ssh agent")
	}

	config := &ssh.ClientConfig{
		User: sshClient.Auth.User,
		Auth: methods,
	}

	if sshClient.Auth.KnownHostsFile != "" {
		callback, err := knownhosts.New(sshClient.Auth.KnownHostsFile)
		if err != nil {
			_ = sshClient.Close()
			return nil, errors.Wrapf(err, "loading known hosts %s", sshClient.Auth.KnownHostsFile)
		}
		config.HostKeyCallback = callback
	} else {
		config.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	sshClient.config = config

	return sshClient, nil
}

func (c *SshClient) BaseAddress() string {
	port := c.Port
	if port == "" {
		port = "22"
	}

	return net.JoinHostPort(c.HostName, port)
}

// RunCommand runs the command through the remote login shell, so every
// argument is quoted.
func (c *SshClient) RunCommand(command string, arguments []string) (string, error) {
	if c.config == nil {
		return "", errors.New("SSH Client not configured")
	}

	parts := make([]string, 0, len(arguments)+1)
	parts = append(parts, ShellQuote(command))
	for _, arg := range arguments {
		parts = append(parts, ShellQuote(arg))
	}
	cmd := strings.Join(parts, " ")

	conn, err := ssh.Dial("tcp", c.BaseAddress(), c.config)
	if err != nil {
		return "", errors.Wrapf(err, "connecting to %s", c.BaseAddress())
	}
	defer conn.Close()

	session, err := conn.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "opening ssh session")
	}
	defer session.Close()

	var stdout, stderr strings.Builder
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(cmd); err != nil {
		out := strings.TrimSuffix(stdout.String(), "\n")
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			if i := strings.IndexByte(msg, '\n'); i >= 0 {
				msg = strings.TrimSpace(msg[:i])
			}
			return out, errors.Errorf("%s, err: %v", msg, err)
		}
		return out, errors.Wrapf(err, "running %s on %s", command, c.HostName)
	}

	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

func (c *SshClient) TransferFile(localFile, remoteFile string) error {
	if c.config == nil {
		return errors.New("SSH Client not configured")
	}

	conn, err := ssh.Dial("tcp", c.BaseAddress(), c.config)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s", c.BaseAddress())
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return errors.Wrap(err, "opening sftp session")
	}
	defer client.Close()

	f, err := os.Open(filepath.Clean(localFile))
	if err != nil {
		return err
	}
	defer f.Close()

	remoteF, err := client.Create(remoteFile)
	if err != nil {
		return errors.Wrapf(err, "creating remote file %s", remoteFile)
	}
	defer remoteF.Close()

	if _, err := io.Copy(remoteF, f); err != nil {
		return errors.Wrapf(err, "writing remote file %s", remoteFile)
	}

	if info, err := f.Stat(); err == nil {
		_ = client.Chmod(remoteFile, info.Mode().Perm())
	}

	return nil
}

// Close releases the ssh agent connection. Sessions are opened and closed
// per command.
func (c *SshClient) Close() error {
	if c.agentConn == nil {
		return nil
	}
	err := c.agentConn.Close()
	c.agentConn = nil
	return err
}

func (c *SshClient) Host() string {
	return c.HostName
}

// ShellQuote quotes s for a POSIX shell unless it only holds safe characters.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !isSafeShellRune(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isSafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./:=@,+%", r)
}

// ParseTarget splits "user@host:port" into its parts; user and port are optional.
func ParseTarget(target string) (user, host, port string, err error) {
	if target == "" {
		return "", "", "", errors.New("empty ssh target")
	}

	if at := strings.LastIndex(target, "@"); at >= 0 {
		user = target[:at]
		target = target[at+1:]
	}

	host = target
	if h, p, splitErr := net.SplitHostPort(target); splitErr == nil {
		host, port = h, p
	}

	if host == "" {
		return "", "", "", errors.Errorf("invalid ssh target %q", target)
	}

	return user, host, port, nil
}
