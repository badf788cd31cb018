package cli

import (
	"context"
	"net"
	"os"
	"strconv"
	"sync"

	"vboxctl/internal/config"
	"vboxctl/internal/constants"
	"vboxctl/internal/events"
	"vboxctl/internal/helpers"
	"vboxctl/internal/interfaces"
	"vboxctl/internal/launcher"
	"vboxctl/internal/localclient"
	"vboxctl/internal/logging"
	"vboxctl/internal/output"
	"vboxctl/internal/resolver"
	"vboxctl/internal/ssh"
	"vboxctl/internal/telemetry"
	"vboxctl/internal/vboxmanage"
	"vboxctl/internal/vminfo"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Uploader copies a local file to a guest over sftp.
type Uploader func(host, port string, auth ssh.SshAuthorization, localFile, remoteFile string) error

// App holds what the commands share. Anything left nil is built from the
// configuration on first use, tests fill the fields in beforehand.
type App struct {
	ctx     context.Context
	viper   *viper.Viper
	cfgFile string

	Config    *config.Config
	Manager   *vboxmanage.Manager
	Launcher  launcher.Launcher
	Publisher events.Publisher
	Telemetry *telemetry.TelemetryService
	Printer   *output.Printer
	Upload    Uploader

	closeOnce sync.Once
}

func NewApp(ctx context.Context) *App {
	return &App{
		ctx:     ctx,
		viper:   viper.New(),
		Printer: output.NewPrinter(os.Stdout, os.Stderr),
	}
}

func (a *App) logger() hclog.Logger {
	return hclog.FromContext(a.ctx)
}

func (a *App) setup() error {
	if a.Config == nil {
		cfg, err := config.Load(a.viper, a.cfgFile)
		if err != nil {
			return err
		}
		a.Config = cfg
		a.ctx, _ = logging.Setup(a.ctx, logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
		if cfg.File != "" {
			a.logger().Debug("loaded config", "file", cfg.File)
		}
	}

	if a.Manager == nil {
		client, path, err := a.commandClient()
		if err != nil {
			return err
		}
		a.Manager = vboxmanage.NewManager(a.ctx, client, path)
	}

	if a.Launcher == nil {
		a.Launcher = launcher.New()
	}

	if a.Publisher == nil {
		publisher, err := events.New(a.Config.Events.NatsURL, a.Config.Events.Subject)
		if err != nil {
			// events are best effort, the command itself still runs
			a.logger().Warn("lifecycle events disabled", "error", err)
			publisher = events.Noop{}
		}
		a.Publisher = publisher
	}

	if a.Telemetry == nil {
		a.Telemetry = telemetry.New(a.ctx, a.Config.Telemetry.ApiKey)
	}

	if a.Upload == nil {
		a.Upload = sftpUpload
	}

	return nil
}

func (a *App) commandClient() (interfaces.CommandClient, string, error) {
	if !a.Config.IsRemote() {
		return localclient.NewLocalClient(), helpers.FindPath(a.ctx, a.Config.VBoxManage), nil
	}

	user, host, port, err := ssh.ParseTarget(a.Config.Host)
	if err != nil {
		return nil, "", err
	}
	if port == "" {
		port = constants.DefaultRemoteSshPort
	}

	client, err := ssh.NewSshClient(host, port, ssh.SshAuthorization{
		User:           helpers.FirstNonEmpty(user, a.Config.SshUser, os.Getenv("USER")),
		Password:       a.Config.SshPassword,
		KeyFile:        a.Config.SshKey,
		KnownHostsFile: a.Config.SshKnownHosts,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "connecting to %s", a.Config.Host)
	}

	a.logger().Debug("running VBoxManage remotely", "host", host, "port", port)
	return client, a.Config.VBoxManage, nil
}

// close flushes telemetry and events. It runs before handing the terminal
// over and again on exit, only the first call does anything.
func (a *App) close() {
	a.closeOnce.Do(func() {
		if a.Publisher != nil {
			a.Publisher.Close()
		}
		if a.Telemetry != nil {
			a.Telemetry.Close()
		}
		if a.Manager != nil {
			if err := a.Manager.Close(); err != nil {
				a.logger().Debug("closing VBoxManage client", "error", err)
			}
		}
	})
}

func (a *App) resolve(selector string) (vboxmanage.Machine, error) {
	machines, err := a.Manager.ListMachines()
	if err != nil {
		return vboxmanage.Machine{}, err
	}

	machine, err := resolver.Resolve(selector, machines)
	if err != nil {
		if resolver.IsResolutionError(err) {
			a.logger().Debug("selector did not pick one machine", "selector", selector, "machines", len(machines))
		}
		return vboxmanage.Machine{}, err
	}

	a.logger().Debug("resolved machine", "selector", selector, "name", machine.Name, "uuid", machine.ID)
	return machine, nil
}

func (a *App) resolveRecord(selector string) (vboxmanage.Machine, *vminfo.Record, error) {
	machine, err := a.resolve(selector)
	if err != nil {
		return machine, nil, err
	}

	record, err := a.Manager.ShowInfo(machine.ID)
	if err != nil {
		return machine, nil, err
	}

	return machine, record, nil
}

// connectHost is where NAT forwarded ports are reachable.
func (a *App) connectHost() string {
	if host := a.Manager.Host(); host != "" {
		return host
	}
	return constants.LocalHost
}

// guestEndpoint finds where a guest service listens: the guest address and
// bridgedPort for bridged adapters, the host side of the NAT rule
// forwarding guestPort otherwise.
func (a *App) guestEndpoint(machine vboxmanage.Machine, record *vminfo.Record, guestPort, bridgedPort int) (string, int, error) {
	switch mode := record.NetworkMode(); mode {
	case constants.NetworkBridged:
		ip, err := a.Manager.GuestIPv4(machine.ID)
		if err != nil {
			return "", 0, err
		}
		if ip == "" {
			return "", 0, errors.Errorf("%s has not reported an IP address, is it running with guest additions?", machine.Name)
		}
		return ip, bridgedPort, nil
	case constants.NetworkNat:
		port, ok := record.HostPort(guestPort)
		if !ok {
			return "", 0, errors.Errorf("no NAT rule forwards guest port %d on %s", guestPort, machine.Name)
		}
		return a.connectHost(), port, nil
	default:
		return "", 0, errors.Errorf("unknown network interface %q on %s", mode, machine.Name)
	}
}

func (a *App) publish(action events.Action, machine vboxmanage.Machine, newName string) {
	err := a.Publisher.Publish(a.ctx, events.Event{
		Action:      action,
		MachineID:   machine.ID,
		MachineName: machine.Name,
		NewName:     newName,
		Host:        a.Manager.Host(),
	})
	if err != nil {
		a.logger().Warn("could not publish event", "action", action, "error", err)
	}
}

func (a *App) track(event telemetry.TelemetryEvent, mode telemetry.TelemetryEventMode, properties map[string]interface{}) {
	if a.Telemetry == nil {
		return
	}
	a.Telemetry.TrackEvent(telemetry.NewTelemetryItem(event, mode, properties))
}

// handoff replaces vboxctl with an interactive client.
func (a *App) handoff(session launcher.Session) error {
	a.logger().Info("launching client", "session", session.String())
	a.close()
	return a.Launcher.Launch(a.ctx, session)
}

func address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func sftpUpload(host, port string, auth ssh.SshAuthorization, localFile, remoteFile string) error {
	client, err := ssh.NewSshClient(host, port, auth)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.TransferFile(localFile, remoteFile)
}
