package vboxmanage

import (
	"context"
	"io"
	"time"

	"vboxctl/internal/constants"
	"vboxctl/internal/interfaces"
	"vboxctl/internal/retry"
	"vboxctl/internal/vminfo"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Manager drives VBoxManage through a CommandClient, locally or over ssh.
type Manager struct {
	client interfaces.CommandClient
	path   string
	ctx    context.Context
}

func NewManager(ctx context.Context, client interfaces.CommandClient, path string) *Manager {
	if path == "" {
		path = constants.VBoxManageExecutable
	}
	return &Manager{
		client: client,
		path:   path,
		ctx:    ctx,
	}
}

// Host is where the machines run, empty for the local host.
func (m *Manager) Host() string {
	return m.client.Host()
}

// Close releases the client when it holds a connection.
func (m *Manager) Close() error {
	if closer, ok := m.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (m *Manager) run(arguments ...string) (string, error) {
	hclog.FromContext(m.ctx).Debug("running VBoxManage", "path", m.path, "args", arguments, "host", m.client.Host())
	return m.client.RunCommand(m.path, arguments)
}

func (m *Manager) ListMachines() ([]Machine, error) {
	output, err := m.run("list", "vms")
	if err != nil {
		return nil, errors.Wrap(err, "listing machines")
	}

	machines, err := ParseMachineList(output)
	if err != nil {
		return nil, err
	}

	hclog.FromContext(m.ctx).Debug("listed machines", "count", len(machines))
	return machines, nil
}

func (m *Manager) ShowInfo(id string) (*vminfo.Record, error) {
	output, err := m.run("showvminfo", id, "--machinereadable")
	if err != nil {
		return nil, errors.Wrapf(err, "getting info for %s", id)
	}

	record := vminfo.Parse(output)
	for _, w := range record.Warnings() {
		hclog.FromContext(m.ctx).Debug("odd line in machine info", "uuid", id, "line", w.Line, "reason", w.Msg, "text", w.Text)
	}

	return record, nil
}

// GuestIPv4 returns the address the guest additions reported for the first
// adapter. It is empty when the guest has not reported one.
func (m *Manager) GuestIPv4(id string) (string, error) {
	output, err := m.run("guestproperty", "get", id, constants.GuestIPv4Property)
	if err != nil {
		return "", errors.Wrapf(err, "getting guest address for %s", id)
	}

	return ParseGuestProperty(output), nil
}

func (m *Manager) StartHeadless(id string) error {
	if _, err := m.run("startvm", id, "--type", "headless"); err != nil {
		return errors.Wrapf(err, "starting %s", id)
	}
	return nil
}

func (m *Manager) ACPIPowerButton(id string) error {
	if _, err := m.run("controlvm", id, "acpipowerbutton"); err != nil {
		return errors.Wrapf(err, "sending acpi power button to %s", id)
	}
	return nil
}

func (m *Manager) PowerOff(id string) error {
	if _, err := m.run("controlvm", id, "poweroff"); err != nil {
		return errors.Wrapf(err, "powering off %s", id)
	}
	return nil
}

func (m *Manager) Rename(id, newName string) error {
	if newName == "" {
		return errors.New("new name cannot be empty")
	}
	if _, err := m.run("modifyvm", id, "--name", newName); err != nil {
		return errors.Wrapf(err, "renaming %s", id)
	}
	return nil
}

// WaitForState polls the machine until VMState equals state.
func (m *Manager) WaitForState(id, state string, attempts int, interval time.Duration) (*vminfo.Record, error) {
	if attempts < 1 {
		attempts = 1
	}

	var last *vminfo.Record
	attempt := 0
	err := retry.For(attempts, interval, func() error {
		attempt++
		record, err := m.ShowInfo(id)
		if err != nil {
			return retry.Stop(err)
		}
		last = record

		if record.State() == state {
			return nil
		}
		if record.State() == constants.StateAborted {
			return retry.Stop(errors.Errorf("%s aborted while waiting for %s", record.Name(), state))
		}
		hclog.FromContext(m.ctx).Info("waiting for machine state", "machine", record.Name(), "want", state, "have", record.State(), "attempt", attempt, "of", attempts)
		return errors.Errorf("%s is %s, not %s", record.Name(), record.State(), state)
	})
	if err != nil {
		return last, err
	}

	return last, nil
}
