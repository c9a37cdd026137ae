// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// MockExecutor implements github.CommandExecutor for tests. Responses are
// routed by command-line prefix; anything unrouted goes to ExecuteFunc.
type MockExecutor struct {
	mu          sync.Mutex
	routes      []route
	ExecuteFunc func(name string, args ...string) ([]byte, error)
	Calls       [][]string
}

type route struct {
	prefix string
	output []byte
	err    error
}

// NewMockExecutor returns an executor with no routes.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// On answers every command line starting with prefix (for example
// "gh repo list") with output and err. Later routes take precedence.
func (m *MockExecutor) On(prefix, output string, err error) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route{prefix: prefix, output: []byte(output), err: err})
	return m
}

// Execute records the call and answers from the matching route, then
// ExecuteFunc. Unmatched commands fail so tests notice unexpected calls.
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, append([]string{name}, args...))
	line := strings.Join(append([]string{name}, args...), " ")
	for i := len(m.routes) - 1; i >= 0; i-- {
		if r := m.routes[i]; strings.HasPrefix(line, r.prefix) {
			m.mu.Unlock()
			return r.output, r.err
		}
	}
	fn := m.ExecuteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(name, args...)
	}
	return nil, fmt.Errorf("mock executor: no response for %q", line)
}

// CallCount returns the number of Execute calls made.
func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsTo counts recorded calls whose command line starts with prefix.
func (m *MockExecutor) CallsTo(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.Calls {
		if strings.HasPrefix(strings.Join(call, " "), prefix) {
			n++
		}
	}
	return n
}
