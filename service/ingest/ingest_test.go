package ingest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPolls(t *testing.T) {
	ctx := context.Background()
	src := NewList("sleep 1", "echo done")

	commands, exhausted := src.Poll(ctx)
	assert.Equal(t, []string{"sleep 1", "echo done"}, commands)
	assert.True(t, exhausted)

	commands, exhausted = src.Poll(ctx)
	assert.Empty(t, commands)
	assert.True(t, exhausted)
}

func TestReaderNeverBlocks(t *testing.T) {
	ctx := context.Background()
	pr, pw := io.Pipe()
	src := NewReader(pr)

	// Nothing available yet: poll returns immediately.
	commands, exhausted := src.Poll(ctx)
	assert.Empty(t, commands)
	assert.False(t, exhausted)

	go func() {
		_, _ = pw.Write([]byte("sleep 1\n\n  echo hi  \n"))
		_ = pw.Close()
	}()

	// Drain everything that arrives until EOF.
	deadline := time.After(time.Second)
	var got []string
	for {
		commands, exhausted = src.Poll(ctx)
		got = append(got, commands...)
		if exhausted {
			break
		}
		select {
		case <-deadline:
			t.Fatal("reader did not exhaust")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	require.Equal(t, []string{"sleep 1", "echo hi"}, got)
}
