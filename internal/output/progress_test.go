package output

import (
	"bytes"
	"strings"
	"testing"
)

// TestProgressBar_NonTTY verifies plain-line output when the writer is not
// a terminal.
func TestProgressBar_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(4, "Reinstalling packages")
	p.SetWriter(&buf)

	p.Update(1)
	p.Update(2)
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "Reinstalling packages: 1/4 (25%)") {
		t.Errorf("missing first update line:\n%s", out)
	}
	if !strings.Contains(out, "Reinstalling packages: 4/4 (100%)") {
		t.Errorf("missing finish line:\n%s", out)
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(0, "noop")
	p.SetWriter(&buf)

	// Must not panic or divide by zero.
	p.Update(0)
	p.Finish()
}
