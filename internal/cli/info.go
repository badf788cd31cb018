package cli

import (
	"strconv"

	"vboxctl/internal/constants"
	"vboxctl/internal/output"
	"vboxctl/internal/telemetry"
	"vboxctl/internal/vboxmanage"
	"vboxctl/internal/vminfo"

	"github.com/spf13/cobra"
)

func newInfoCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info [selector]",
		Short: "Show state, OS type and connection ports of a machine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(app, selectorArg(args), format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, yaml or json")

	return cmd
}

func runInfo(app *App, selector, format string) error {
	machine, record, err := app.resolveRecord(selector)
	if err != nil {
		return err
	}

	app.track(telemetry.EventInfo, telemetry.ModeRead, map[string]interface{}{"format": format, "network": record.NetworkMode()})

	if format != "" && format != "text" {
		return app.Printer.Record(record, format)
	}

	app.Printer.Header(record.Name())
	app.Printer.Fields([]output.Field{
		{Label: "Name", Value: record.Name()},
		{Label: "UUID", Value: record.UUID()},
		{Label: "State", Value: record.State()},
		{Label: "OS Type", Value: record.OSType()},
	})

	if record.VRDEEnabled() {
		if port, ok := record.RDPPort(); ok {
			app.Printer.Fields([]output.Field{{Label: "RDP Port", Value: strconv.Itoa(port)}})
		}
	} else {
		app.Printer.Line("RDP Off")
	}

	app.Printer.Fields(networkFields(app, machine, record))

	return nil
}

func networkFields(app *App, machine vboxmanage.Machine, record *vminfo.Record) []output.Field {
	var fields []output.Field

	switch record.NetworkMode() {
	case constants.NetworkNat:
		if port, ok := record.HostPort(constants.GuestSshPort); ok {
			fields = append(fields, output.Field{Label: "SSH Port", Value: strconv.Itoa(port)})
		}
		if port, ok := record.HostPort(constants.GuestVncPort); ok {
			fields = append(fields, output.Field{Label: "VNC Port", Value: strconv.Itoa(port)})
		}
	case constants.NetworkBridged:
		ip, err := app.Manager.GuestIPv4(machine.ID)
		if err != nil {
			app.logger().Warn("could not read guest address", "machine", machine.Name, "error", err)
		}
		fields = append(fields, output.Field{Label: "IP Address", Value: ip})
	}

	return fields
}
