package cli

import (
	"strconv"

	"vboxctl/internal/constants"
	"vboxctl/internal/helpers"
	"vboxctl/internal/ssh"
	"vboxctl/internal/telemetry"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPushCmd(app *App) *cobra.Command {
	var identity, password string

	cmd := &cobra.Command{
		Use:   "push <selector> <user> <local-file> <remote-file>",
		Short: "Copy a file to a guest over sftp",
		Args:  cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 {
				return errors.New("push needs a selector, a username, a local file and a remote file")
			}

			keyFile, err := homedir.Expand(helpers.FirstNonEmpty(identity, app.Config.SshKey))
			if err != nil {
				return errors.Wrap(err, "expanding identity file")
			}
			localFile, err := homedir.Expand(args[2])
			if err != nil {
				return errors.Wrap(err, "expanding local file")
			}

			machine, record, err := app.resolveRecord(args[0])
			if err != nil {
				return err
			}

			host, port, err := app.guestEndpoint(machine, record, constants.GuestSshPort, constants.GuestSshPort)
			if err != nil {
				return err
			}

			app.track(telemetry.EventPush, telemetry.ModeUpload, map[string]interface{}{"network": record.NetworkMode()})
			app.logger().Info("uploading file", "machine", machine.Name, "local", localFile, "remote", args[3])

			auth := ssh.SshAuthorization{
				User:           args[1],
				Password:       helpers.FirstNonEmpty(password, app.Config.SshPassword),
				KeyFile:        keyFile,
				KnownHostsFile: app.Config.SshKnownHosts,
			}
			if err := app.Upload(host, strconv.Itoa(port), auth, localFile, args[3]); err != nil {
				return errors.Wrapf(err, "uploading %s to %s", localFile, machine.Name)
			}

			app.Printer.Line("%s -> %s:%s", localFile, machine.Name, args[3])
			return nil
		},
	}
	cmd.Flags().StringVarP(&identity, "identity", "i", "", "private key file (default ssh_key from the config)")
	cmd.Flags().StringVar(&password, "password", "", "password for the guest user")

	return cmd
}
