// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsInPostOrder(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		require.True(t, loop.Post(func() { got = append(got, i) }))
	}
	loop.Stop()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_Call(t *testing.T) {
	loop := NewLoop(zerolog.Nop())
	defer loop.Stop()

	ran := false
	require.True(t, loop.Call(func() { ran = true }))
	assert.True(t, ran, "Call returns after the task ran")
}

func TestLoop_StopWaitsForTimers(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	var mu sync.Mutex
	var got []string
	record := func(s string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, s)
		}
	}

	loop.After(60*time.Millisecond, record("late"))
	loop.After(10*time.Millisecond, record("early"))
	loop.Post(record("now"))

	loop.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"now", "early", "late"}, got)
}

func TestLoop_TimerArmedByTaskDuringStop(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	fired := make(chan struct{}, 1)
	loop.After(10*time.Millisecond, func() {
		loop.After(10*time.Millisecond, func() { fired <- struct{}{} })
	})
	loop.Stop()

	select {
	case <-fired:
	default:
		t.Fatal("timer armed while stopping should still run")
	}
}

func TestLoop_RejectsWorkAfterStop(t *testing.T) {
	loop := NewLoop(zerolog.Nop())
	loop.Stop()

	assert.False(t, loop.Post(func() {}))
	assert.False(t, loop.Call(func() {}))
	loop.After(time.Millisecond, func() { t.Error("must not run") })
	assert.Equal(t, 0, loop.Pending())
	time.Sleep(10 * time.Millisecond)

	select {
	case <-loop.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestLoop_SurvivesPanic(t *testing.T) {
	loop := NewLoop(zerolog.Nop())
	defer loop.Stop()

	loop.Post(func() { panic("boom") })
	ran := false
	loop.Call(func() { ran = true })
	assert.True(t, ran)
}

func TestLoop_SingleGoroutine(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	// Unsynchronized counter: safe only if tasks never overlap (checked by -race).
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Post(func() { counter++ })
			loop.After(time.Millisecond, func() { counter++ })
		}()
	}
	wg.Wait()
	loop.Stop()

	assert.Equal(t, 40, counter)
}

func TestLoop_PendingCountsArmedTimers(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	loop.After(200*time.Millisecond, func() {})
	assert.Equal(t, 1, loop.Pending())

	loop.Stop()
	assert.Equal(t, 0, loop.Pending())
}
