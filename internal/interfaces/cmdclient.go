package interfaces

// CommandClient runs a command on the host where VBoxManage lives and returns
// its standard output.
type CommandClient interface {
	RunCommand(command string, arguments []string) (string, error)
	// Host is the address of the machine running the commands, empty when local.
	Host() string
}
