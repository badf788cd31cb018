package cli

import (
	"vboxctl/internal/constants"
	"vboxctl/internal/telemetry"

	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipSetup: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.Line("%s version %s", constants.AppName, telemetry.VERSION)
			return nil
		},
	}
}
