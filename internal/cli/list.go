package cli

import (
	"vboxctl/internal/resolver"
	"vboxctl/internal/telemetry"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list [selector]",
		Aliases: []string{"ls"},
		Short:   "List machines with their state and OS type",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(app, selectorArg(args))
		},
	}
}

func runList(app *App, selector string) error {
	machines, err := app.Manager.ListMachines()
	if err != nil {
		return err
	}

	matches, err := resolver.Match(selector, machines)
	if err != nil {
		return err
	}

	app.track(telemetry.EventList, telemetry.ModeRead, map[string]interface{}{"count": len(matches)})

	app.Printer.ListHeader()
	for _, m := range matches {
		record, err := app.Manager.ShowInfo(m.ID)
		if err != nil {
			// an inaccessible machine must not hide the others
			app.logger().Warn("could not read machine info", "machine", m.Name, "error", err)
			app.Printer.ListRow(m.Name, "unknown", "")
			continue
		}
		app.Printer.ListRow(record.Name(), record.State(), record.OSType())
	}

	return nil
}

func selectorArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
