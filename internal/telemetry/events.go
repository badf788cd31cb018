package telemetry

type TelemetryEvent string

const (
	EventList    TelemetryEvent = "VBOXCTL::LIST"
	EventInfo    TelemetryEvent = "VBOXCTL::INFO"
	EventState   TelemetryEvent = "VBOXCTL::STATE"
	EventRename  TelemetryEvent = "VBOXCTL::RENAME"
	EventConnect TelemetryEvent = "VBOXCTL::CONNECT"
	EventPush    TelemetryEvent = "VBOXCTL::PUSH"
)

type TelemetryEventMode string

const (
	ModeRead   TelemetryEventMode = "READ"
	ModeStart  TelemetryEventMode = "START"
	ModeStop   TelemetryEventMode = "STOP"
	ModeKill   TelemetryEventMode = "KILL"
	ModeUpdate TelemetryEventMode = "UPDATE"
	ModeSsh    TelemetryEventMode = "SSH"
	ModeRdp    TelemetryEventMode = "RDP"
	ModeVnc    TelemetryEventMode = "VNC"
	ModeUpload TelemetryEventMode = "UPLOAD"
)
