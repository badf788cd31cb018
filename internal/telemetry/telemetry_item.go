package telemetry

import (
	"fmt"
	"os"
	"runtime"

	"vboxctl/internal/helpers"
)

type TelemetryItem struct {
	UserID     string
	DeviceId   string
	Type       string
	Properties map[string]interface{}
}

func NewTelemetryItem(eventType TelemetryEvent, mode TelemetryEventMode, properties map[string]interface{}) TelemetryItem {
	item := TelemetryItem{
		Type:       fmt.Sprintf("%s::%s", string(eventType), string(mode)),
		Properties: properties,
	}
	if item.Properties == nil {
		item.Properties = make(map[string]interface{})
	}

	item.Properties["os"] = runtime.GOOS
	item.Properties["architecture"] = runtime.GOARCH
	item.Properties["version"] = VERSION

	// Only hashes leave the machine.
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		item.DeviceId = helpers.Sha256Hash(hostname)
	}
	if user := os.Getenv("USER"); user != "" {
		item.UserID = helpers.Sha256Hash(user)
	}

	return item
}
