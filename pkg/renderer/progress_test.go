package renderer

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// captureLogger records everything written through Printf
type captureLogger struct {
	lines []string
}

func (c *captureLogger) Printf(format string, args ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func (c *captureLogger) String() string {
	return strings.Join(c.lines, "")
}

func TestProgressTracker(t *testing.T) {
	start := time.Unix(1000, 0)
	current := start
	tracker := newProgressTracker(2500, 1000, func() time.Time { return current })

	steps := []struct {
		add        int
		advance    time.Duration
		wantReport bool
		wantDone   int
	}{
		{1, time.Second, true, 1},
		{500, time.Second, false, 0},
		{600, time.Second, true, 1101},
		{399, time.Second, false, 0},
		{1000, time.Second, true, 2500},
	}

	for i, step := range steps {
		current = current.Add(step.advance)
		update, ok := tracker.add(step.add)
		if ok != step.wantReport {
			t.Fatalf("step %d: report = %t, want %t", i, ok, step.wantReport)
		}
		if ok && update.Completed != step.wantDone {
			t.Errorf("step %d: completed = %d, want %d", i, update.Completed, step.wantDone)
		}
	}
}

func TestProgressTracker_ETA(t *testing.T) {
	start := time.Unix(0, 0)
	current := start
	tracker := newProgressTracker(100, 10, func() time.Time { return current })

	current = start.Add(10 * time.Second)
	update, ok := tracker.add(25)
	if !ok {
		t.Fatal("Expected a report")
	}

	// A quarter done in 10s leaves 30s
	if update.ETA != 30*time.Second {
		t.Errorf("ETA = %v, want 30s", update.ETA)
	}
	if update.Fraction() != 0.25 {
		t.Errorf("Fraction = %f, want 0.25", update.Fraction())
	}
}

func TestLogProgress(t *testing.T) {
	logger := &captureLogger{}
	logProgress(logger, ProgressUpdate{
		Completed: 1,
		Total:     8,
		Elapsed:   1500 * time.Millisecond,
		ETA:       10500 * time.Millisecond,
	})

	want := "\r12.50% | Elapsed: 1.5s | ETA: 10.5s"
	if got := logger.String(); got != want {
		t.Errorf("logProgress wrote %q, want %q", got, want)
	}
}
