package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerAnimatesAndClears(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, "waiting for codellama")
	spinner.interval = 5 * time.Millisecond

	spinner.Start()
	time.Sleep(50 * time.Millisecond)
	spinner.Stop()

	out := buf.String()
	if !strings.Contains(out, "waiting for codellama") {
		t.Errorf("spinner output missing the label: %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K") {
		t.Errorf("spinner did not clear its line on stop: %q", out)
	}
	for _, r := range out {
		if r > 127 {
			t.Fatalf("spinner output must stay ASCII, got %q in %q", r, out)
		}
	}
}

func TestSpinnerStartStopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, "waiting")

	spinner.Start()
	spinner.Start()
	spinner.Stop()
	spinner.Stop()
}
