package cli

import (
	"strconv"

	"vboxctl/internal/constants"
	"vboxctl/internal/launcher"
	"vboxctl/internal/telemetry"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ssh <selector> <user> [-- <ssh args>]",
		Short: "Open an ssh session to a guest",
		Long: `Open an ssh session to a guest. Bridged guests are reached on their own
address, NAT guests through the host port forwarded to guest port 22.
Arguments after -- are passed to the ssh client.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, extra := splitAtDash(cmd, args)
			if len(positional) < 2 || positional[1] == "" {
				return errors.New("missing username")
			}
			if len(positional) > 2 {
				extra = append(append([]string{}, positional[2:]...), extra...)
			}

			machine, record, err := app.resolveRecord(positional[0])
			if err != nil {
				return err
			}

			host, port, err := app.guestEndpoint(machine, record, constants.GuestSshPort, constants.GuestSshPort)
			if err != nil {
				return err
			}

			app.track(telemetry.EventConnect, telemetry.ModeSsh, map[string]interface{}{"network": record.NetworkMode()})

			sshArgs := []string{"-p", strconv.Itoa(port), positional[1] + "@" + host}
			return app.handoff(launcher.Session{
				Path: app.Config.Clients.Ssh,
				Args: append(sshArgs, extra...),
			})
		},
	}
}

func newRdpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rdp [selector]",
		Short: "Open the VirtualBox remote display of a machine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, record, err := app.resolveRecord(selectorArg(args))
			if err != nil {
				return err
			}

			if !record.VRDEEnabled() {
				return errors.Errorf("remote display is off on %s", machine.Name)
			}
			port, ok := record.RDPPort()
			if !ok {
				return errors.Errorf("no remote display port configured on %s", machine.Name)
			}

			app.track(telemetry.EventConnect, telemetry.ModeRdp, nil)

			return app.handoff(launcher.Session{
				Path: app.Config.Clients.Rdp,
				Args: []string{address(app.connectHost(), port)},
			})
		},
	}
}

func newVncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vnc [selector]",
		Short: "Open a VNC viewer on a guest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, record, err := app.resolveRecord(selectorArg(args))
			if err != nil {
				return err
			}

			host, port, err := app.guestEndpoint(machine, record, constants.GuestVncPort, constants.BridgedVncPort)
			if err != nil {
				return err
			}

			app.track(telemetry.EventConnect, telemetry.ModeVnc, map[string]interface{}{"network": record.NetworkMode()})

			return app.handoff(launcher.Session{
				Path: app.Config.Clients.Vnc,
				Args: []string{address(host, port)},
			})
		},
	}
}

// splitAtDash separates the arguments before -- from those after it.
func splitAtDash(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}
