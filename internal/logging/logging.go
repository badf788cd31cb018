// Package logging builds the hclog logger shared by every command and
// carries it in the context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"vboxctl/internal/constants"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

type Options struct {
	// Level is one of trace, debug, info, warn, error or off.
	Level  string
	Output io.Writer
	JSON   bool
}

func ParseLevel(level string) (hclog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return hclog.Trace, nil
	case "debug":
		return hclog.Debug, nil
	case "info":
		return hclog.Info, nil
	case "", "warn", "warning":
		return hclog.Warn, nil
	case "error":
		return hclog.Error, nil
	case "off", "none":
		return hclog.Off, nil
	default:
		return hclog.Warn, errors.Errorf("invalid log level: %s", level)
	}
}

// Setup returns a context carrying the logger. An invalid level falls back
// to warn and is reported through the logger itself.
func Setup(ctx context.Context, opts Options) (context.Context, hclog.Logger) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	level, levelErr := ParseLevel(opts.Level)
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       constants.AppName,
		Level:      level,
		Output:     opts.Output,
		JSONFormat: opts.JSON,
		Color:      hclog.AutoColor,
	})
	if levelErr != nil {
		logger.Warn("ignoring log level", "error", levelErr)
	}

	return hclog.WithContext(ctx, logger), logger
}
