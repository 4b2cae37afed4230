package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_InitialState(t *testing.T) {
	m := NewMonitor()
	assert.Equal(t, Unreachable, m.Current())
	assert.False(t, m.Reachable())
}

func TestMonitor_NotifiesOnTransitionsOnly(t *testing.T) {
	m := NewMonitor()

	var got []State
	m.Subscribe(func(s State) { got = append(got, s) })

	m.Set(Unreachable) // no change
	m.Set(Reachable)
	m.Set(Reachable) // no change
	m.Set(Unreachable)

	assert.Equal(t, []State{Reachable, Unreachable}, got)
}

func TestMonitor_SubscriptionOrderAndUnsubscribe(t *testing.T) {
	m := NewMonitor()

	var calls []string
	unsubA := m.Subscribe(func(State) { calls = append(calls, "a") })
	m.Subscribe(func(State) { calls = append(calls, "b") })

	m.Set(Reachable)
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA() // idempotent
	m.Set(Unreachable)
	assert.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestMonitor_UnsubscribeInsideCallback(t *testing.T) {
	m := NewMonitor()

	count := 0
	var unsub func()
	unsub = m.Subscribe(func(State) {
		count++
		unsub()
	})

	m.Set(Reachable)
	m.Set(Unreachable)
	assert.Equal(t, 1, count)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "reachable", Reachable.String())
	assert.Equal(t, "unreachable", Unreachable.String())
}
