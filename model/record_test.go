package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLifecycle(t *testing.T) {
	rec := NewRecord("sleep 1", 5)
	assert.Equal(t, StatePending, rec.State)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Terminal())

	// First dispatch
	err := rec.MarkStarted(42, 10)
	assert.NoError(t, err)
	assert.True(t, rec.Started)
	assert.Equal(t, 42, rec.PID)
	assert.Equal(t, int64(10), rec.Start)
	assert.Equal(t, int64(10), rec.ContextStart)

	// Preempt after 30ms of execution
	err = rec.MarkPaused(40)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), rec.Burst)
	assert.True(t, rec.Paused())

	// Resume and finish
	err = rec.MarkResumed(100)
	assert.NoError(t, err)
	err = rec.Finish(150)
	assert.NoError(t, err)

	assert.True(t, rec.Finished)
	assert.False(t, rec.Errored)
	assert.Equal(t, int64(80), rec.Burst)       // 30 + 50
	assert.Equal(t, int64(145), rec.Turnaround) // 150 - 5
	assert.Equal(t, int64(65), rec.Waiting)     // 145 - 80
	assert.Equal(t, int64(5), rec.Response)     // 10 - 5

	assert.GreaterOrEqual(t, rec.Turnaround, int64(0))
	assert.GreaterOrEqual(t, rec.Waiting, int64(0))
	assert.GreaterOrEqual(t, rec.Response, int64(0))
}

func TestRecordTerminalIsFrozen(t *testing.T) {
	rec := NewRecord("echo hi", 0)
	assert.NoError(t, rec.MarkStarted(1, 0))
	assert.NoError(t, rec.Finish(20))

	burst := rec.Burst
	assert.Equal(t, ErrTerminal, rec.MarkPaused(30))
	assert.Equal(t, ErrTerminal, rec.MarkResumed(30))
	assert.Equal(t, ErrTerminal, rec.Finish(30))
	assert.Equal(t, ErrTerminal, rec.Fail(30))
	assert.Equal(t, burst, rec.Burst)
}

func TestRecordFailKeepsPartialBurst(t *testing.T) {
	rec := NewRecord("false", 0)
	assert.NoError(t, rec.MarkStarted(7, 2))
	assert.NoError(t, rec.MarkPaused(12))
	assert.NoError(t, rec.MarkResumed(20))
	assert.NoError(t, rec.Fail(25))

	assert.True(t, rec.Errored)
	assert.False(t, rec.Finished)
	// Partial accumulated value frozen at error time: 10 + 5.
	assert.Equal(t, int64(15), rec.Burst)
	// Turnaround and waiting stay zero on failure.
	assert.Equal(t, int64(0), rec.Turnaround)
	assert.Equal(t, int64(0), rec.Waiting)
	assert.Equal(t, int64(2), rec.Response)
}

func TestRecordFailWhilePausedKeepsClosedBurst(t *testing.T) {
	rec := NewRecord("sleep 1", 0)
	assert.NoError(t, rec.MarkStarted(3, 0))
	assert.NoError(t, rec.MarkPaused(10))

	// The slice was closed out at preemption; failing later must not count
	// the paused interval.
	assert.NoError(t, rec.Fail(25))
	assert.True(t, rec.Errored)
	assert.Equal(t, int64(10), rec.Burst)
	assert.Equal(t, int64(0), rec.Response)
}

func TestRecordFailBeforeStart(t *testing.T) {
	rec := NewRecord("no-such-binary", 4)
	assert.NoError(t, rec.Fail(9))
	assert.True(t, rec.Terminal())
	assert.Equal(t, int64(0), rec.Burst)
	assert.Equal(t, int64(0), rec.Response)
}

func TestRecordInvalidTransitions(t *testing.T) {
	rec := NewRecord("ls", 0)
	assert.Error(t, rec.MarkPaused(1))
	assert.Error(t, rec.MarkResumed(1))
	assert.Error(t, rec.Finish(1))

	assert.NoError(t, rec.MarkStarted(1, 1))
	assert.Error(t, rec.MarkStarted(2, 2))
	assert.Error(t, rec.MarkResumed(2))
}
