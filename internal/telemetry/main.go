package telemetry

import (
	"context"
	"time"

	"github.com/amplitude/analytics-go/amplitude"
	"github.com/amplitude/analytics-go/amplitude/types"
	"github.com/hashicorp/go-hclog"
)

// Both are set at build time with -ldflags -X.
var (
	AMPLITUDE_API_KEY string = ""
	VERSION                  = "dev"
)

// New builds the service. Without an API key, from the build or from the
// config, telemetry stays disabled and nothing leaves the machine.
func New(ctx context.Context, apiKey string) *TelemetryService {
	svc := &TelemetryService{
		EnableTelemetry: true,
		ctx:             ctx,
	}

	key := AMPLITUDE_API_KEY
	if apiKey != "" {
		key = apiKey
	}

	if key == "" {
		hclog.FromContext(ctx).Trace("telemetry disabled as no API key found")
		svc.EnableTelemetry = false
		return svc
	}

	config := amplitude.NewConfig(key)
	config.FlushQueueSize = 100
	config.FlushInterval = time.Second * 3
	config.ExecuteCallback = func(result types.ExecuteResult) {
		svc.Callback(result)
	}

	svc.client = amplitude.NewClient(config)
	hclog.FromContext(ctx).Debug("telemetry enabled")
	return svc
}
