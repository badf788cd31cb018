// Package resolver narrows the registered machines down with a
// user supplied selector.
package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"vboxctl/internal/vboxmanage"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("no machine matches")

type AmbiguousError struct {
	Selector   string
	Candidates []vboxmanage.Machine
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, m := range e.Candidates {
		names = append(names, m.Name)
	}
	return fmt.Sprintf("%q is ambiguous, it matches %d machines: %s", e.Selector, len(e.Candidates), strings.Join(names, ", "))
}

// IsResolutionError reports whether err means the selector did not pick
// exactly one machine.
func IsResolutionError(err error) bool {
	var ambiguous *AmbiguousError
	return errors.Is(err, ErrNotFound) || errors.As(err, &ambiguous)
}

// Match returns every machine whose name matches selector,
// case-insensitively. An empty selector matches everything; a selector that
// is a UUID only matches that identifier.
func Match(selector string, machines []vboxmanage.Machine) ([]vboxmanage.Machine, error) {
	if selector == "" {
		out := make([]vboxmanage.Machine, len(machines))
		copy(out, machines)
		return out, nil
	}

	if id, err := uuid.Parse(selector); err == nil {
		for _, m := range machines {
			if other, err := uuid.Parse(m.ID); err == nil && other == id {
				return []vboxmanage.Machine{m}, nil
			}
		}
		return []vboxmanage.Machine{}, nil
	}

	re, err := regexp.Compile("(?i)" + selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector %q", selector)
	}

	out := make([]vboxmanage.Machine, 0)
	for _, m := range machines {
		if re.MatchString(m.Name) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Resolve returns the single machine matching selector.
func Resolve(selector string, machines []vboxmanage.Machine) (vboxmanage.Machine, error) {
	matches, err := Match(selector, machines)
	if err != nil {
		return vboxmanage.Machine{}, err
	}

	switch len(matches) {
	case 0:
		if selector == "" {
			return vboxmanage.Machine{}, errors.Wrap(ErrNotFound, "no machines registered")
		}
		return vboxmanage.Machine{}, errors.Wrapf(ErrNotFound, "%q", selector)
	case 1:
		return matches[0], nil
	default:
		return vboxmanage.Machine{}, &AmbiguousError{Selector: selector, Candidates: matches}
	}
}
