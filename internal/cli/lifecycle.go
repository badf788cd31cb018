package cli

import (
	"vboxctl/internal/constants"
	"vboxctl/internal/events"
	"vboxctl/internal/telemetry"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "start [selector]",
		Short: "Start a machine without a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, err := app.resolve(selectorArg(args))
			if err != nil {
				return err
			}

			app.track(telemetry.EventState, telemetry.ModeStart, nil)
			if err := app.Manager.StartHeadless(machine.ID); err != nil {
				return err
			}
			app.publish(events.ActionStart, machine, "")

			if wait {
				return app.waitFor(machine.ID, constants.StateRunning)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the machine is running")

	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "stop [selector]",
		Short: "Ask the guest to shut down by pressing the ACPI power button",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, err := app.resolve(selectorArg(args))
			if err != nil {
				return err
			}

			app.track(telemetry.EventState, telemetry.ModeStop, nil)
			if err := app.Manager.ACPIPowerButton(machine.ID); err != nil {
				return err
			}
			app.publish(events.ActionStop, machine, "")

			if wait {
				return app.waitFor(machine.ID, constants.StatePowerOff)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the machine is powered off")

	return cmd
}

func newKillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "kill [selector]",
		Short: "Power a machine off immediately",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, err := app.resolve(selectorArg(args))
			if err != nil {
				return err
			}

			app.track(telemetry.EventState, telemetry.ModeKill, nil)
			if err := app.Manager.PowerOff(machine.ID); err != nil {
				return err
			}
			app.publish(events.ActionKill, machine, "")

			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <selector> <new-name>",
		Short: "Rename a machine",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || args[1] == "" {
				return errors.New("missing new name")
			}

			machine, err := app.resolve(args[0])
			if err != nil {
				return err
			}

			app.track(telemetry.EventRename, telemetry.ModeUpdate, nil)
			if err := app.Manager.Rename(machine.ID, args[1]); err != nil {
				return err
			}
			app.publish(events.ActionRename, machine, args[1])

			return nil
		},
	}
}

func (a *App) waitFor(id, state string) error {
	a.logger().Info("waiting for machine", "uuid", id, "state", state)
	_, err := a.Manager.WaitForState(id, state, a.Config.Wait.Attempts, a.Config.Wait.Interval)
	return err
}
