package cli

import (
	"context"
	"os"

	"vboxctl/internal/constants"
	"vboxctl/internal/launcher"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const rootLong = `vboxctl wraps VBoxManage with short verbs. Machines are picked with a
case-insensitive regular expression matched against their name or UUID;
every verb except list needs the expression to match exactly one machine.`

func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.AppName + " <verb> [<selector>] [<arg>]",
		Short:         "Short commands for VirtualBox machines",
		Long:          rootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsSetup(cmd) {
				return nil
			}
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			_ = cmd.Usage()
			return errors.Errorf("unknown command %q", args[0])
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(app.Printer.Out())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default "+constants.DefaultConfigDir+"/config.yaml)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error or off")
	flags.String("host", "", "run VBoxManage on this host over ssh, as user@host:port")
	flags.String("vboxmanage", "", "path to the VBoxManage executable")
	_ = app.viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = app.viper.BindPFlag("host", flags.Lookup("host"))
	_ = app.viper.BindPFlag("vboxmanage", flags.Lookup("vboxmanage"))

	rootCmd.AddCommand(
		newListCmd(app),
		newInfoCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newKillCmd(app),
		newRenameCmd(app),
		newSshCmd(app),
		newRdpCmd(app),
		newVncCmd(app),
		newPushCmd(app),
		newVersionCmd(app),
	)

	return rootCmd
}

const skipSetup = "vboxctl/skip-setup"

// needsSetup is false for usage, help and version, which must work even
// when the platform cannot be reached.
func needsSetup(cmd *cobra.Command) bool {
	if !cmd.HasParent() || cmd.Name() == "help" {
		return false
	}
	return cmd.Annotations[skipSetup] == ""
}

// Run executes args and returns the process exit status.
func Run(app *App, args []string) int {
	defer app.close()

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		app.Printer.Error(err)
		return 1
	}

	return 0
}

func Execute() int {
	return Run(NewApp(context.Background()), os.Args[1:])
}
