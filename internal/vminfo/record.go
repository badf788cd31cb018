// Package vminfo parses the machine readable dump printed by
// "VBoxManage showvminfo --machinereadable" and extracts the fields the
// commands need from it.
package vminfo

import (
	"strconv"
	"strings"

	"vboxctl/internal/constants"
)

// Record is one machine readable dump. Keys keep the order they were
// printed in.
type Record struct {
	values     map[string]string
	keys       []string
	forwarding []ForwardingRule
	warnings   []ParseError
}

func newRecord() *Record {
	return &Record{values: make(map[string]string)}
}

func (r *Record) set(key, value string) {
	if _, ok := r.values[key]; ok {
		return
	}
	r.values[key] = value
	r.keys = append(r.keys, key)

	if isForwardingKey(key) {
		if rule, err := ParseForwardingRule(value); err == nil {
			r.forwarding = append(r.forwarding, rule)
		}
	}
}

// Get returns the value stored under key or an empty string.
func (r *Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r.values[key]
}

func (r *Record) Lookup(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[key]
	return v, ok
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Map() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.keys))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r *Record) warn(line int, text, msg string) {
	r.warnings = append(r.warnings, ParseError{Line: line, Text: text, Msg: msg})
}

// Warnings lists the lines Parse skipped or only read leniently.
func (r *Record) Warnings() []ParseError {
	if r == nil {
		return nil
	}
	out := make([]ParseError, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func (r *Record) Name() string   { return r.Get("name") }
func (r *Record) UUID() string   { return r.Get("UUID") }
func (r *Record) State() string  { return r.Get("VMState") }
func (r *Record) OSType() string { return r.Get("ostype") }

// NetworkMode is the attachment of the first adapter, "nat" or "bridged"
// for the modes the connect commands understand.
func (r *Record) NetworkMode() string { return r.Get("nic1") }

func (r *Record) VRDEEnabled() bool {
	return r.Get("vrde") == "on"
}

// Forwarding returns the NAT forwarding rules in the order they were printed.
func (r *Record) Forwarding() []ForwardingRule {
	if r == nil {
		return nil
	}
	out := make([]ForwardingRule, len(r.forwarding))
	copy(out, r.forwarding)
	return out
}

// HostPort returns the host side of the first TCP rule forwarding to
// guestPort. The boolean is false when no rule forwards that port.
func (r *Record) HostPort(guestPort int) (int, bool) {
	if r == nil {
		return 0, false
	}
	for _, rule := range r.forwarding {
		if rule.Protocol == "tcp" && rule.GuestPort == guestPort {
			return rule.HostPort, true
		}
	}
	return 0, false
}

// RDPPort returns the port the remote display server listens on.
func (r *Record) RDPPort() (int, bool) {
	ports := strings.TrimSpace(r.Get("vrdeports"))
	if ports != "" {
		if rule, err := ParseForwardingRule(ports); err == nil {
			if rule.Protocol == "tcp" && rule.GuestPort == constants.GuestRdpPort {
				return rule.HostPort, true
			}
			return 0, false
		}

		// Plain form: "3389", "5000,5010-5012" or "5000-5050".
		first := strings.SplitN(ports, ",", 2)[0]
		first = strings.SplitN(first, "-", 2)[0]
		if port, err := strconv.Atoi(strings.TrimSpace(first)); err == nil && port > 0 {
			return port, true
		}
	}

	if port, err := strconv.Atoi(r.Get("vrdeport")); err == nil && port > 0 {
		return port, true
	}

	return 0, false
}
