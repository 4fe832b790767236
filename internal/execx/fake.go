package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are keyed by the
// joined argv string; unmatched commands fall back to Default or fail.
type FakeRunner struct {
	mu sync.Mutex

	// Responses maps a space-joined argv to its scripted outcome.
	Responses map[string]FakeResponse

	// Default is used for commands with no scripted response. When nil,
	// unmatched commands return an error.
	Default *FakeResponse

	// Calls records every argv in invocation order.
	Calls [][]string
}

// FakeResponse is a scripted command outcome.
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Run records argv and returns its scripted response.
func (f *FakeRunner) Run(_ context.Context, argv []string) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, append([]string(nil), argv...))

	key := strings.Join(argv, " ")
	resp, ok := f.Responses[key]
	if !ok {
		if f.Default == nil {
			return nil, fmt.Errorf("unexpected command: %s", key)
		}
		resp = *f.Default
	}

	result := &Result{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}
	if resp.Err != nil {
		return result, resp.Err
	}
	if resp.ExitCode != 0 {
		return result, fmt.Errorf("%s exited with status %d (stderr: %s)",
			argv[0], resp.ExitCode, resp.Stderr)
	}
	return result, nil
}

// CallCount returns how many commands have been run.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// CalledWith reports whether a command with the given space-joined argv
// was run.
func (f *FakeRunner) CalledWith(joined string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.Calls {
		if strings.Join(call, " ") == joined {
			return true
		}
	}
	return false
}
