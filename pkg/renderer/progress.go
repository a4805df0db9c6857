package renderer

import (
	"fmt"
	"time"

	"github.com/df07/tinytracer/pkg/core"
)

// DefaultProgressInterval is the number of finished pixels between progress reports
const DefaultProgressInterval = 1000

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressUpdate describes how far a render has come
type ProgressUpdate struct {
	Completed int           // Pixels finished
	Total     int           // Pixels in the image
	Elapsed   time.Duration // Time since the render started
	ETA       time.Duration // Estimated time remaining
}

// Fraction returns the completed share of the image in [0, 1]
func (p ProgressUpdate) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Completed) / float64(p.Total)
}

// progressTracker decides when to report and estimates the time left.
// Only the collecting goroutine touches it.
type progressTracker struct {
	total     int
	interval  int
	completed int
	nextAt    int
	start     time.Time
	now       func() time.Time
}

func newProgressTracker(total, interval int, now func() time.Time) *progressTracker {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	if now == nil {
		now = time.Now
	}
	return &progressTracker{
		total:    total,
		interval: interval,
		nextAt:   1,
		start:    now(),
		now:      now,
	}
}

// add records n finished pixels and returns an update when a report is due:
// on the first pixel, every interval pixels after it, and on the last pixel
func (pt *progressTracker) add(n int) (ProgressUpdate, bool) {
	pt.completed += n
	if pt.completed < pt.nextAt && pt.completed < pt.total {
		return ProgressUpdate{}, false
	}
	for pt.nextAt <= pt.completed {
		pt.nextAt += pt.interval
	}

	elapsed := pt.now().Sub(pt.start)
	update := ProgressUpdate{
		Completed: pt.completed,
		Total:     pt.total,
		Elapsed:   elapsed,
	}
	if fraction := update.Fraction(); fraction > 0 {
		update.ETA = time.Duration(float64(elapsed)/fraction) - elapsed
	}
	return update, true
}

// logProgress writes a progress line that overwrites itself on a terminal
func logProgress(logger core.Logger, p ProgressUpdate) {
	logger.Printf("\r%.2f%% | Elapsed: %.1fs | ETA: %.1fs",
		p.Fraction()*100, p.Elapsed.Seconds(), p.ETA.Seconds())
}
