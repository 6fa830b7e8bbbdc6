package control

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedo/schedo/model"
)

func newTestService() *Service {
	var discard bytes.Buffer
	return New(WithOutput(&discard, &discard))
}

func TestStartAndWaitSuccess(t *testing.T) {
	s := newTestService()
	rec := model.NewRecord("true", 0)

	require.NoError(t, s.Start(rec, 1))
	assert.True(t, rec.Started)
	assert.True(t, rec.Running())

	status, err := s.Wait(context.Background(), rec)
	assert.NoError(t, err)
	assert.Equal(t, Succeeded, status)
	assert.Equal(t, 0, s.Active())
}

func TestStartAndWaitFailure(t *testing.T) {
	s := newTestService()
	rec := model.NewRecord("false", 0)

	require.NoError(t, s.Start(rec, 1))
	status, err := s.Wait(context.Background(), rec)
	assert.NoError(t, err)
	assert.Equal(t, Failed, status)
}

func TestEmptyCommandIsNoopChild(t *testing.T) {
	s := newTestService()
	rec := model.NewRecord("   ", 0)

	require.NoError(t, s.Start(rec, 1))
	status, err := s.Poll(rec)
	assert.NoError(t, err)
	assert.Equal(t, Succeeded, status)
}

func TestUnknownCommandFailsImmediately(t *testing.T) {
	s := newTestService()
	rec := model.NewRecord("definitely-not-a-real-binary-1b2c", 0)

	require.NoError(t, s.Start(rec, 1))
	status, err := s.Poll(rec)
	assert.NoError(t, err)
	assert.Equal(t, Failed, status)
}

func TestPollStillRunning(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns a sleeping child")
	}
	s := newTestService()
	rec := model.NewRecord("sleep 0.3", 0)

	require.NoError(t, s.Start(rec, 0))
	status, err := s.Poll(rec)
	assert.NoError(t, err)
	assert.Equal(t, StillRunning, status)

	status, err = s.Wait(context.Background(), rec)
	assert.NoError(t, err)
	assert.Equal(t, Succeeded, status)
}

func TestPauseResume(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns a sleeping child")
	}
	s := newTestService()
	rec := model.NewRecord("sleep 0.2", 0)

	require.NoError(t, s.Start(rec, 0))
	require.NoError(t, s.Pause(rec, 50))
	assert.True(t, rec.Paused())
	assert.Equal(t, int64(50), rec.Burst)

	// A stopped child does not exit while paused.
	time.Sleep(300 * time.Millisecond)
	status, err := s.Poll(rec)
	assert.NoError(t, err)
	assert.Equal(t, StillRunning, status)

	require.NoError(t, s.Resume(rec, 400))
	assert.True(t, rec.Running())
	status, err = s.Wait(context.Background(), rec)
	assert.NoError(t, err)
	assert.Equal(t, Succeeded, status)
}

func TestControlNoopsWithoutChild(t *testing.T) {
	s := newTestService()
	rec := model.NewRecord("ls", 0)

	// Pause/Resume before start are no-ops per lifecycle contract.
	assert.NoError(t, s.Pause(rec, 0))
	assert.NoError(t, s.Resume(rec, 0))

	_, err := s.Poll(rec)
	assert.Equal(t, ErrNotStarted, err)
	_, err = s.Wait(context.Background(), rec)
	assert.Equal(t, ErrNotStarted, err)
}

func TestWaitHonoursContext(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns a sleeping child")
	}
	s := newTestService()
	rec := model.NewRecord("sleep 2", 0)
	require.NoError(t, s.Start(rec, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Wait(ctx, rec)
	assert.Error(t, err)
}
