package ready

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatch_FiresWaitersInOrderOnce(t *testing.T) {
	var l Latch
	var got []string
	l.AfterInteractions(func() { got = append(got, "a") })
	l.AfterInteractions(func() { got = append(got, "b") })

	require.False(t, l.Fired())
	l.Fire()
	l.Fire()

	assert.True(t, l.Fired())
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLatch_CancelRemovesWaiter(t *testing.T) {
	var l Latch
	var got []string
	cancel := l.AfterInteractions(func() { got = append(got, "cancelled") })
	l.AfterInteractions(func() { got = append(got, "kept") })

	cancel()
	cancel()
	l.Fire()

	assert.Equal(t, []string{"kept"}, got)
}

func TestLatch_RegisterAfterFireRunsImmediately(t *testing.T) {
	var l Latch
	l.Fire()

	ran := false
	cancel := l.AfterInteractions(func() { ran = true })
	require.True(t, ran)
	require.NotPanics(t, cancel)
}

func TestLoop_RunsInFIFOOrder(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		loop.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	loop.Close()

	require.Len(t, got, 50)
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestLoop_RecoversPanics(t *testing.T) {
	loop := NewLoop(zerolog.Nop())

	ran := false
	loop.Post(func() { panic("boom") })
	loop.Post(func() { ran = true })
	loop.Close()

	assert.True(t, ran)
}

func TestLoop_PostAfterCloseIsDropped(t *testing.T) {
	loop := NewLoop(zerolog.Nop())
	loop.Close()
	loop.Close()

	ran := false
	loop.Post(func() { ran = true })
	assert.False(t, ran)
}
