package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	testCases := map[time.Duration]string{
		0:                "0:00:00",
		-time.Minute:     "0:00:00",
		59 * time.Second: "0:00:59",
		time.Hour + 2*time.Minute + 3*time.Second:           "1:02:03",
		7*time.Hour + 59*time.Minute + 999*time.Millisecond: "7:59:00",
		26 * time.Hour: "26:00:00",
	}

	for d, want := range testCases {
		assert.Equal(t, want, Format(d), d.String())
	}
}

func TestElapsedNeverNegative(t *testing.T) {
	now := time.Now()

	assert.Equal(t, time.Duration(0), Elapsed(now.Add(time.Minute), now))
	assert.Equal(t, time.Minute, Elapsed(now.Add(-time.Minute), now))
}

func TestClockTicksUntilStopped(t *testing.T) {
	start := time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
	now := start.Add(90 * time.Minute)

	c := New(
		WithInterval(5*time.Millisecond),
		WithNow(func() time.Time { return now }),
	)

	readings := c.Start(context.Background(), start)

	first, ok := <-readings
	require.True(t, ok)
	assert.Equal(t, "1:30:00", first)

	second, ok := <-readings
	require.True(t, ok)
	assert.Equal(t, "1:30:00", second)

	c.Stop()

	for range readings {
		// drain readings sent before the stop was observed
	}

	c.Stop()
}

func TestClockStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	c := New(WithInterval(time.Hour))
	readings := c.Start(ctx, time.Now())

	<-readings
	cancel()

	select {
	case _, ok := <-readings:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("clock did not stop after context cancellation")
	}
}
