// Package testhelper holds fakes shared by the package tests.
package testhelper

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type Response struct {
	Output string
	Err    error
}

// FakeClient answers commands from a table keyed by the space separated
// arguments, without the executable.
type FakeClient struct {
	HostName  string
	Responses map[string]Response

	mu    sync.Mutex
	calls []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{Responses: make(map[string]Response)}
}

func (f *FakeClient) On(args string, output string) *FakeClient {
	f.Responses[args] = Response{Output: output}
	return f
}

func (f *FakeClient) Fail(args string, msg string) *FakeClient {
	f.Responses[args] = Response{Err: errors.New(msg)}
	return f
}

func (f *FakeClient) RunCommand(command string, arguments []string) (string, error) {
	key := strings.Join(arguments, " ")

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	resp, ok := f.Responses[key]
	if !ok {
		return "", errors.Errorf("unexpected command %s %s", command, key)
	}
	return resp.Output, resp.Err
}

func (f *FakeClient) Host() string {
	return f.HostName
}

func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Called reports whether any call started with prefix.
func (f *FakeClient) Called(prefix string) bool {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
