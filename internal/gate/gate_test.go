package gate

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	posts []func()
}

func (d *recordingDispatcher) Post(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.posts = append(d.posts, fn)
}

func (d *recordingDispatcher) runAll() int {
	d.mu.Lock()
	posts := d.posts
	d.posts = nil
	d.mu.Unlock()
	for _, fn := range posts {
		fn()
	}
	return len(posts)
}

func TestGate_InteractionFirstThenTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := New(Options{Logger: zerolog.Nop()})
		defer g.Stop()

		g.AllowInteraction()
		require.True(t, g.HasUserInteracted())

		time.Sleep(1999 * time.Millisecond)
		synctest.Wait()
		require.False(t, g.IsInputAllowed(), "allowed at t=1999ms")
		require.False(t, g.HasTimePassed())

		time.Sleep(time.Millisecond)
		synctest.Wait()
		require.True(t, g.IsInputAllowed(), "not allowed at t=2000ms")

		time.Sleep(time.Hour)
		synctest.Wait()
		require.True(t, g.IsInputAllowed(), "admission must stay open")
	})
}

func TestGate_TimerFirstThenInteraction(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := New(Options{MinDelay: 500 * time.Millisecond, Logger: zerolog.Nop()})
		defer g.Stop()

		time.Sleep(time.Second)
		synctest.Wait()
		require.True(t, g.HasTimePassed())
		require.False(t, g.IsInputAllowed(), "time alone must not admit input")

		g.AllowInteraction()
		require.True(t, g.IsInputAllowed())
	})
}

func TestGate_InteractionAloneIsNotEnough(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := New(Options{Logger: zerolog.Nop()})
		g.AllowInteraction()
		g.AllowInteraction()
		g.Stop()

		time.Sleep(time.Hour)
		synctest.Wait()
		assert.True(t, g.HasUserInteracted())
		assert.False(t, g.HasTimePassed(), "stopped gate must not flip the time flag")
		assert.False(t, g.IsInputAllowed())
	})
}

func TestGate_SubscribersNotifiedOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := &recordingDispatcher{}
		g := New(Options{MinDelay: 10 * time.Millisecond, Dispatcher: d, Logger: zerolog.Nop()})
		defer g.Stop()

		calls := 0
		g.Subscribe(func() { calls++ })

		g.AllowInteraction()
		require.Equal(t, 0, d.runAll())

		time.Sleep(10 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 1, d.runAll())
		require.Equal(t, 1, calls)

		g.AllowInteraction()
		require.Equal(t, 0, d.runAll())

		late := 0
		g.Subscribe(func() { late++ })
		require.Equal(t, 0, late, "subscribe after admission must not run inline")
		require.Equal(t, 1, d.runAll())
		require.Equal(t, 1, late)
	})
}

func TestGate_SubscriberPanicIsRecovered(t *testing.T) {
	d := &recordingDispatcher{}
	g := New(Options{MinDelay: time.Hour, Dispatcher: d, Logger: zerolog.Nop()})
	defer g.Stop()
	g.markTimePassed()
	g.AllowInteraction()

	g.Subscribe(func() { panic("boom") })
	require.NotPanics(t, func() { d.runAll() })
}

type recordingModel struct {
	msgs *[]tea.Msg
}

func (m recordingModel) Init() tea.Cmd { return nil }

func (m recordingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	*m.msgs = append(*m.msgs, msg)
	return m, nil
}

func (m recordingModel) View() string { return "inner view" }

func TestObserve_PassesEveryMessageThrough(t *testing.T) {
	g := New(Options{MinDelay: time.Hour, Logger: zerolog.Nop()})
	defer g.Stop()

	var seen []tea.Msg
	m := Observe(recordingModel{msgs: &seen}, g)

	motion := tea.MouseMsg{Action: tea.MouseActionMotion, X: 3, Y: 4}
	size := tea.WindowSizeMsg{Width: 80, Height: 24}
	m, _ = m.Update(motion)
	m, _ = m.Update(size)
	require.False(t, g.HasUserInteracted(), "motion and resize are not interactions")

	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	m, _ = m.Update(key)
	require.True(t, g.HasUserInteracted())

	require.Equal(t, []tea.Msg{motion, size, key}, seen)
	require.Equal(t, "inner view", m.View())
}

func TestIsUserEvent(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.Msg
		want bool
	}{
		{"key", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"click", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, true},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion}, false},
		{"resize", tea.WindowSizeMsg{Width: 1, Height: 1}, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUserEvent(tc.msg); got != tc.want {
				t.Fatalf("IsUserEvent(%T) = %v, want %v", tc.msg, got, tc.want)
			}
		})
	}
}
