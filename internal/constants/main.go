package constants

const (
	AppName          = "vboxctl"
	EnvPrefix        = "VBOXCTL"
	DefaultConfigDir = "~/.config/vboxctl"

	VBoxManageExecutable = "VBoxManage"
	DefaultSshClient     = "ssh"
	DefaultRdpClient     = "rdesktop"
	DefaultVncClient     = "vncviewer"

	GuestIPv4Property = "/VirtualBox/GuestInfo/Net/0/V4/IP"
	LocalHost         = "localhost"

	GuestSshPort         = 22
	GuestRdpPort         = 3389
	GuestVncPort         = 5900
	BridgedVncPort       = 5901
	DefaultRemoteSshPort = "22"

	DEFAULT_WAIT_ATTEMPTS = 30
	DEFAULT_WAIT_INTERVAL = "2s"

	DefaultEventsSubject = "vboxctl.events"
)

// Machine states as reported by VMState.
const (
	StateRunning  = "running"
	StatePowerOff = "poweroff"
	StateAborted  = "aborted"
)

// Network attachment modes as reported by nicN.
const (
	NetworkNat     = "nat"
	NetworkBridged = "bridged"
)
