package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/amplitude/analytics-go/amplitude"
	"github.com/amplitude/analytics-go/amplitude/types"
	"github.com/hashicorp/go-hclog"
)

type TelemetryService struct {
	ctx             context.Context
	client          amplitude.Client
	mu              sync.Mutex
	EnableTelemetry bool
}

func (t *TelemetryService) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.EnableTelemetry && t.client != nil
}

func (t *TelemetryService) TrackEvent(item TelemetryItem) {
	logger := hclog.FromContext(t.ctx)
	if !t.Enabled() {
		logger.Trace("[Telemetry] Telemetry is disabled, ignoring event track")
		return
	}

	logger.Debug(fmt.Sprintf("[Telemetry] Sending Amplitude Tracking event %s", item.Type))

	if len(item.UserID) < 5 {
		if item.DeviceId != "" {
			item.UserID = fmt.Sprintf("%s@%s", item.UserID, item.DeviceId)
		} else {
			item.UserID = fmt.Sprintf("%s@service", item.UserID)
		}
	}
	if len(item.DeviceId) < 5 {
		item.DeviceId = "service"
	}

	ev := amplitude.Event{
		EventType:       item.Type,
		EventProperties: item.Properties,
	}
	ev.UserID = item.UserID
	ev.DeviceID = item.DeviceId

	t.client.Track(ev)
}

func (t *TelemetryService) Callback(result types.ExecuteResult) {
	logger := hclog.FromContext(t.ctx)
	if result.Code < 200 || result.Code >= 300 {
		logger.Debug(fmt.Sprintf("[Telemetry] Failed to send event to Amplitude: %v", result.Message))
		if result.Code == 401 || result.Code == 403 || result.Message == "Invalid API key" {
			logger.Debug("[Telemetry] Disabling telemetry as received invalid key")
			t.mu.Lock()
			t.EnableTelemetry = false
			t.mu.Unlock()
		}
		return
	}

	logger.Trace("[Telemetry] Event sent to Amplitude")
}

// Close sends whatever is queued. It must run before the process exits or
// is replaced by an interactive client.
func (t *TelemetryService) Close() {
	if t.client == nil {
		return
	}
	t.client.Flush()
	t.client.Shutdown()
}
