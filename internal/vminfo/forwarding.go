package vminfo

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ForwardingRule is a NAT port forwarding rule as printed in
// Forwarding(N)="name,proto,hostip,hostport,guestip,guestport".
type ForwardingRule struct {
	Name      string `json:"name" yaml:"name"`
	Protocol  string `json:"protocol" yaml:"protocol"`
	HostIP    string `json:"host_ip,omitempty" yaml:"host_ip,omitempty"`
	HostPort  int    `json:"host_port" yaml:"host_port"`
	GuestIP   string `json:"guest_ip,omitempty" yaml:"guest_ip,omitempty"`
	GuestPort int    `json:"guest_port" yaml:"guest_port"`
}

func ParseForwardingRule(value string) (ForwardingRule, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 6 {
		return ForwardingRule{}, errors.Errorf("forwarding rule %q: want 6 fields, got %d", value, len(fields))
	}

	hostPort, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return ForwardingRule{}, errors.Wrapf(err, "forwarding rule %q: host port", value)
	}
	guestPort, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil {
		return ForwardingRule{}, errors.Wrapf(err, "forwarding rule %q: guest port", value)
	}

	return ForwardingRule{
		Name:      fields[0],
		Protocol:  strings.ToLower(strings.TrimSpace(fields[1])),
		HostIP:    strings.TrimSpace(fields[2]),
		HostPort:  hostPort,
		GuestIP:   strings.TrimSpace(fields[4]),
		GuestPort: guestPort,
	}, nil
}

func isForwardingKey(key string) bool {
	if !strings.HasPrefix(key, "Forwarding(") || !strings.HasSuffix(key, ")") {
		return false
	}
	_, err := strconv.Atoi(key[len("Forwarding(") : len(key)-1])
	return err == nil
}
