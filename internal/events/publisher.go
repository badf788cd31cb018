// Package events publishes machine lifecycle changes to NATS so other
// tooling can follow what vboxctl did.
package events

import (
	"context"
	"encoding/json"
	"time"

	"vboxctl/internal/constants"

	"github.com/hashicorp/go-hclog"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

type Action string

const (
	ActionStart  Action = "start"
	ActionStop   Action = "stop"
	ActionKill   Action = "kill"
	ActionRename Action = "rename"
)

type Event struct {
	Action      Action    `json:"action"`
	MachineID   string    `json:"machine_id"`
	MachineName string    `json:"machine_name"`
	NewName     string    `json:"new_name,omitempty"`
	Host        string    `json:"host,omitempty"`
	Time        time.Time `json:"time"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// New returns a NATS publisher, or one that drops everything when url is
// empty.
func New(url, subject string) (Publisher, error) {
	if url == "" {
		return Noop{}, nil
	}
	if subject == "" {
		subject = constants.DefaultEventsSubject
	}

	opts := []nats.Option{
		nats.Name(constants.AppName),
		nats.Timeout(2 * time.Second),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to nats at %s", url)
	}

	return &NatsPublisher{nc: nc, subject: subject}, nil
}

type NatsPublisher struct {
	nc      *nats.Conn
	subject string
}

func (p *NatsPublisher) Publish(ctx context.Context, event Event) error {
	if p.nc == nil || p.nc.IsClosed() {
		return errors.New("nats not connected")
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}

	subject := p.subject + "." + string(event.Action)
	hclog.FromContext(ctx).Debug("publishing event", "subject", subject, "machine", event.MachineName)
	if err := p.nc.Publish(subject, payload); err != nil {
		return errors.Wrapf(err, "publishing to %s", subject)
	}
	return nil
}

// Close flushes pending messages before the process exits or execs.
func (p *NatsPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close()                               {}
