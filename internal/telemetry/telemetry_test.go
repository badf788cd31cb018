package telemetry

import (
	"context"
	"runtime"
	"testing"

	"github.com/amplitude/analytics-go/amplitude/types"
	"github.com/stretchr/testify/assert"
)

func TestNewWithoutKeyIsDisabled(t *testing.T) {
	svc := New(context.Background(), "")

	assert.False(t, svc.Enabled())
	svc.TrackEvent(NewTelemetryItem(EventList, ModeRead, nil))
	svc.Close()
}

func TestNewTelemetryItem(t *testing.T) {
	t.Setenv("USER", "someone")

	item := NewTelemetryItem(EventConnect, ModeSsh, map[string]interface{}{"network": "nat"})

	assert.Equal(t, "VBOXCTL::CONNECT::SSH", item.Type)
	assert.Equal(t, "nat", item.Properties["network"])
	assert.Equal(t, runtime.GOOS, item.Properties["os"])
	assert.Equal(t, runtime.GOARCH, item.Properties["architecture"])
	assert.Len(t, item.UserID, 64)
	assert.NotContains(t, item.UserID, "someone")
}

func TestCallbackDisablesOnInvalidKey(t *testing.T) {
	svc := &TelemetryService{ctx: context.Background(), EnableTelemetry: true}

	svc.Callback(types.ExecuteResult{Code: 401, Message: "Invalid API key"})

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.False(t, svc.EnableTelemetry)
}
