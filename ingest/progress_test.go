package ingest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(50)

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100", "finish should set to total")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Increment(50)
	tracker.Finish()

	assert.Empty(t, buf.String(), "updates before Start are ignored")
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Start()
	tracker.Increment(25)

	assert.Contains(t, buf.String(), "10/10")
}
