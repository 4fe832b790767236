package brew

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ridgeline-systems/pymigrate/internal/execx"
)

// Test data: sample brew info --json=v2 output for a single formula.
const mockBrewInfoJSON = `{
  "formulae": [
    {
      "name": "certbot",
      "full_name": "certbot",
      "tap": "homebrew/core",
      "versions": {"stable": "2.0.0", "head": "HEAD"},
      "dependencies": ["openssl", "python@3.9"]
    }
  ],
  "casks": []
}`

func TestListFormulaNames(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew list --formula": {Stdout: "certbot\nffmpeg\n\nnumpy\n"},
		},
	}

	names, err := NewClient(runner).ListFormulaNames(context.Background())
	if err != nil {
		t.Fatalf("ListFormulaNames() failed: %v", err)
	}

	want := []string{"certbot", "ffmpeg", "numpy"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListFormulaNames() = %v, want %v", names, want)
	}
}

func TestListFormulaNames_CommandFails(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew list --formula": {ExitCode: 1, Stderr: "Error: brew broke"},
		},
	}

	if _, err := NewClient(runner).ListFormulaNames(context.Background()); err == nil {
		t.Error("ListFormulaNames() should propagate command failure")
	}
}

func TestFormulaInfo(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew info certbot --json=v2": {Stdout: mockBrewInfoJSON},
		},
	}

	formula, err := NewClient(runner).FormulaInfo(context.Background(), "certbot")
	if err != nil {
		t.Fatalf("FormulaInfo() failed: %v", err)
	}

	if formula.Name != "certbot" {
		t.Errorf("Name = %q, want certbot", formula.Name)
	}
	if formula.Versions.Stable != "2.0.0" {
		t.Errorf("Versions.Stable = %q, want 2.0.0", formula.Versions.Stable)
	}
	wantDeps := []string{"openssl", "python@3.9"}
	if !reflect.DeepEqual(formula.Dependencies, wantDeps) {
		t.Errorf("Dependencies = %v, want %v", formula.Dependencies, wantDeps)
	}
}

func TestFormulaInfo_MalformedJSON(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew info certbot --json=v2": {Stdout: "Warning: not json at all"},
		},
	}

	if _, err := NewClient(runner).FormulaInfo(context.Background(), "certbot"); err == nil {
		t.Error("FormulaInfo() should fail on unparsable output")
	}
}

// TestFormulaInfo_NoFormulae verifies the explicit zero-match error: an info
// result with an empty formulae array must surface ErrNoFormula instead of
// faulting on the missing record.
func TestFormulaInfo_NoFormulae(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew info somecask --json=v2": {Stdout: `{"formulae": [], "casks": []}`},
		},
	}

	_, err := NewClient(runner).FormulaInfo(context.Background(), "somecask")
	if !errors.Is(err, ErrNoFormula) {
		t.Errorf("FormulaInfo() error = %v, want ErrNoFormula", err)
	}
}

func TestPrefix(t *testing.T) {
	runner := &execx.FakeRunner{
		Responses: map[string]execx.FakeResponse{
			"brew --prefix": {Stdout: "/usr/local\n"},
		},
	}

	prefix, err := NewClient(runner).Prefix(context.Background())
	if err != nil {
		t.Fatalf("Prefix() failed: %v", err)
	}
	if prefix != "/usr/local" {
		t.Errorf("Prefix() = %q, want /usr/local", prefix)
	}
}

func TestUninstall_ArgvShape(t *testing.T) {
	runner := &execx.FakeRunner{Default: &execx.FakeResponse{}}

	if err := NewClient(runner).Uninstall(context.Background(), "python@3.9"); err != nil {
		t.Fatalf("Uninstall() failed: %v", err)
	}
	if !runner.CalledWith("brew uninstall --ignore-dependencies python@3.9") {
		t.Errorf("Uninstall() ran %v, want brew uninstall --ignore-dependencies python@3.9", runner.Calls)
	}
}
