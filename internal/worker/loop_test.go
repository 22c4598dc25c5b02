package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/testing/leaktest"
)

func TestLoop_DoRunsSerially(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	defer checker.Check(2)

	loop := NewLoop()
	loop.Start()

	counter := 0
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		go func() {
			errs <- loop.Do(context.Background(), func() { counter++ })
		}()
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, <-errs)
	}

	var got int
	require.NoError(t, loop.Do(context.Background(), func() { got = counter }))
	assert.Equal(t, 100, got)

	require.NoError(t, loop.Stop(context.Background()))
}

func TestLoop_PostFromLoop(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer func() { _ = loop.Stop(context.Background()) }()

	done := make(chan struct{})
	require.NoError(t, loop.Post(func() {
		_ = loop.Post(func() { close(done) })
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested post never ran")
	}
}

func TestLoop_DoHonoursContext(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer func() { _ = loop.Stop(context.Background()) }()

	block := make(chan struct{})
	require.NoError(t, loop.Post(func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := loop.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
}

func TestLoop_AfterFunc(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer func() { _ = loop.Stop(context.Background()) }()

	fired := make(chan struct{})
	loop.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	cancel := loop.AfterFunc(time.Hour, func() { t.Error("cancelled timer fired") })
	assert.True(t, cancel())
	assert.False(t, cancel())
}

func TestLoop_StopRejectsAndDrains(t *testing.T) {
	loop := NewLoop()
	loop.Start()

	ran := false
	require.NoError(t, loop.Post(func() { ran = true }))
	loop.AfterFunc(time.Hour, func() {})

	require.NoError(t, loop.Stop(context.Background()))
	assert.True(t, ran)
	assert.ErrorIs(t, loop.Post(func() {}), ErrLoopStopped)
	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), ErrLoopStopped)
}
