package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"vboxctl/internal/config"
	"vboxctl/internal/events"
	"vboxctl/internal/launcher"
	"vboxctl/internal/logging"
	"vboxctl/internal/output"
	"vboxctl/internal/ssh"
	"vboxctl/internal/testhelper"
	"vboxctl/internal/vboxmanage"

	"github.com/fatih/color"
)

const (
	webID = "6f2a7c1e-1d2b-4e8f-9a3c-5b6d7e8f9a0b"
	dbID  = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

	listOutput = `"web" {` + webID + `}
"db" {` + dbID + `}
`
)

func init() {
	color.NoColor = true
}

type fakeLauncher struct {
	sessions []launcher.Session
	err      error
}

func (f *fakeLauncher) Launch(ctx context.Context, session launcher.Session) error {
	f.sessions = append(f.sessions, session)
	return f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	closed bool
}

func (r *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) Close() {
	r.closed = true
}

type upload struct {
	host, port string
	auth       ssh.SshAuthorization
	local      string
	remote     string
}

type harness struct {
	app       *App
	client    *testhelper.FakeClient
	launcher  *fakeLauncher
	publisher *recordingPublisher
	uploads   []upload
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctx, _ := logging.Setup(context.Background(), logging.Options{Level: "off"})

	h := &harness{
		client:    testhelper.NewFakeClient().On("list vms", listOutput),
		launcher:  &fakeLauncher{},
		publisher: &recordingPublisher{},
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}

	app := NewApp(ctx)
	app.Config = &config.Config{
		Clients: config.Clients{Ssh: "ssh", Rdp: "rdesktop", Vnc: "vncviewer"},
		Wait:    config.Wait{Attempts: 1, Interval: time.Millisecond},
	}
	app.Manager = vboxmanage.NewManager(ctx, h.client, "VBoxManage")
	app.Launcher = h.launcher
	app.Publisher = h.publisher
	app.Printer = output.NewPrinter(h.stdout, h.stderr)
	app.Upload = func(host, port string, auth ssh.SshAuthorization, localFile, remoteFile string) error {
		h.uploads = append(h.uploads, upload{host: host, port: port, auth: auth, local: localFile, remote: remoteFile})
		return nil
	}
	h.app = app

	return h
}

func (h *harness) showInfo(id, text string) *harness {
	h.client.On("showvminfo "+id+" --machinereadable", text)
	return h
}

func (h *harness) run(args ...string) int {
	return Run(h.app, args)
}
