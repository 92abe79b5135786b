package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(l *Listener) []Update {
	var got []Update
	for {
		select {
		case u := <-l.Updates():
			got = append(got, u)
		default:
			return got
		}
	}
}

func TestAnnounceBroadcastsToAll(t *testing.T) {
	a := NewAnnouncer()
	l1 := a.AddListener(1)
	l2 := a.AddListener(2)

	a.Announce(GameStart(), nil)

	assert.Len(t, drain(l1), 1)
	assert.Len(t, drain(l2), 1)
}

func TestAnnounceTargetsSpecificPlayers(t *testing.T) {
	a := NewAnnouncer()
	l1 := a.AddListener(1)
	l2 := a.AddListener(2)

	a.Announce(PlayerReady(1), []int64{1})

	assert.Len(t, drain(l1), 1)
	assert.Empty(t, drain(l2))
}

func TestMultipleListenersPerPlayer(t *testing.T) {
	a := NewAnnouncer()
	tab1 := a.AddListener(1)
	tab2 := a.AddListener(1)

	a.Announce(GameStart(), []int64{1})

	assert.Len(t, drain(tab1), 1)
	assert.Len(t, drain(tab2), 1)
}

func TestFullQueueEvictsListener(t *testing.T) {
	a := NewAnnouncer()
	stalled := a.AddListener(1)
	healthy := a.AddListener(2)

	for i := 0; i < queueCapacity; i++ {
		a.Announce(Ping(), []int64{1})
	}

	// The next announce must not block and must drop the stalled listener.
	a.Announce(GameStart(), nil)

	assert.Len(t, drain(healthy), 1)

	// The evicted listener's channel was closed after the buffered updates.
	for i := 0; i < queueCapacity; i++ {
		<-stalled.Updates()
	}
	_, open := <-stalled.Updates()
	assert.False(t, open)

	// The player with no live listeners left is gone from the registry.
	a.mu.Lock()
	_, exists := a.listeners[1]
	a.mu.Unlock()
	assert.False(t, exists)
}

func TestRemoveListener(t *testing.T) {
	a := NewAnnouncer()
	l := a.AddListener(1)

	a.RemoveListener(l)
	a.Announce(GameStart(), nil)

	assert.Empty(t, drain(l))

	// Removing twice is harmless.
	a.RemoveListener(l)
}

func TestAnnounceToUnknownPlayer(t *testing.T) {
	a := NewAnnouncer()
	require.NotPanics(t, func() {
		a.Announce(GameStart(), []int64{99})
	})
}
