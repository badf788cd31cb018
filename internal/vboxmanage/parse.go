package vboxmanage

import (
	"bufio"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Machine is one entry of "VBoxManage list vms".
type Machine struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"uuid" yaml:"uuid"`
}

// ParseMachineList reads lines shaped like `"name" {uuid}`. The name may
// itself contain quotes and braces, so the identifier is taken from the
// last brace pair.
func ParseMachineList(output string) ([]Machine, error) {
	machines := make([]Machine, 0)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		open := strings.LastIndex(line, "{")
		if open < 0 || !strings.HasSuffix(line, "}") {
			return nil, errors.Errorf("unexpected machine list line %q", line)
		}

		id := line[open+1 : len(line)-1]
		if _, err := uuid.Parse(id); err != nil {
			return nil, errors.Wrapf(err, "machine list line %q", line)
		}

		name := strings.TrimSpace(line[:open])
		if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
			name = name[1 : len(name)-1]
		}

		machines = append(machines, Machine{Name: name, ID: id})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading machine list")
	}

	return machines, nil
}

// ParseGuestProperty extracts the value from "Value: <value>". Anything
// else, typically "No value set!", yields an empty string.
func ParseGuestProperty(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if v, ok := strings.CutPrefix(line, "Value:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
