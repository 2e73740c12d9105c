package index

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(50)

	assert.Greater(t, tracker.Elapsed(), time.Duration(0))
	output := buf.String()
	assert.Contains(t, output, "Embedding: 100/100")
	assert.Contains(t, output, "100.0%")
	assert.Contains(t, output, "texts/s")
}

func TestProgressTracker_FinishReportsActualProgress(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 100, 1000)

	tracker.Start()
	tracker.Increment(40)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "40/100")
	assert.Contains(t, output, "\n")
}

func TestProgressTracker_IncrementBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 100, 10)

	tracker.Start()
	tracker.Increment(150)

	assert.Equal(t, 100, tracker.Current())
	assert.Contains(t, buf.String(), "100/100")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 100, 10)

	tracker.Increment(10)
	tracker.Finish()

	assert.Equal(t, "", buf.String(), "should have no output when not started")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 1000, 100)
	tracker.Start()

	tracker.Increment(50)
	assert.Equal(t, "", buf.String(), "should not print under interval")

	tracker.Increment(50)
	assert.NotEmpty(t, buf.String(), "should print at interval")
}

func TestProgressTracker_ConcurrentIncrements(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Embedding", 1000, 100)
	tracker.Start()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				tracker.Increment(10)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, tracker.Current())
}
