package docs

import (
	"context"
	"strings"
)

// MockExecutor records commands and returns configured responses.
// This is exported for use across package tests.
type MockExecutor struct {
	commands []MockCommand
	calls    []ExecutorCall
}

// MockCommand defines a mock response for a command argument prefix.
type MockCommand struct {
	ArgsPrefix string
	Output     []byte
	Err        error
}

// ExecutorCall records a command invocation.
type ExecutorCall struct {
	Dir  string
	Name string
	Args []string
}

// NewMockExecutor creates a new mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddResponse adds a mock response for commands whose joined arguments
// start with the given prefix.
func (m *MockExecutor) AddResponse(argsPrefix string, output []byte, err error) {
	m.commands = append(m.commands, MockCommand{
		ArgsPrefix: argsPrefix,
		Output:     output,
		Err:        err,
	})
}

// Run records the invocation and returns the first matching mock response.
func (m *MockExecutor) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, ExecutorCall{Dir: dir, Name: name, Args: args})

	joined := strings.Join(args, " ")
	for _, cmd := range m.commands {
		if strings.HasPrefix(joined, cmd.ArgsPrefix) {
			return cmd.Output, cmd.Err
		}
	}
	return nil, nil
}

// Calls returns the recorded invocations.
func (m *MockExecutor) Calls() []ExecutorCall {
	return m.calls
}
