package events

import "sync"

// queueCapacity bounds each listener's buffered updates. A listener that
// falls this far behind is considered dead and gets evicted.
const queueCapacity = 1024

// Listener is one registered consumer of a player's update stream. A
// player may hold several at once (one per connected client).
type Listener struct {
	playerID int64
	ch       chan Update
}

// Updates is the receive side of the listener's queue. The channel is
// closed if the announcer evicts the listener.
func (l *Listener) Updates() <-chan Update {
	return l.ch
}

// Announcer is a per-game broadcast hub keyed by player id. Announce
// never blocks and never fails the caller: a listener with a full queue
// is dropped instead.
type Announcer struct {
	mu        sync.Mutex
	listeners map[int64][]*Listener
}

func NewAnnouncer() *Announcer {
	return &Announcer{
		listeners: make(map[int64][]*Listener),
	}
}

// AddListener registers a new bounded queue under the given player id.
func (a *Announcer) AddListener(playerID int64) *Listener {
	l := &Listener{
		playerID: playerID,
		ch:       make(chan Update, queueCapacity),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners[playerID] = append(a.listeners[playerID], l)
	return l
}

// RemoveListener deregisters a listener. Removing a listener the
// announcer already evicted is a no-op.
func (a *Announcer) RemoveListener(l *Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ql, ok := a.listeners[l.playerID]
	if !ok {
		return
	}
	for i, registered := range ql {
		if registered == l {
			a.listeners[l.playerID] = append(ql[:i], ql[i+1:]...)
			break
		}
	}
	if len(a.listeners[l.playerID]) == 0 {
		delete(a.listeners, l.playerID)
	}
}

// Announce pushes an update to every listener of every target player. A
// nil target list means all registered players. Listeners whose queue is
// full are evicted and their channel closed, so a stalled consumer
// eventually observes the closure.
func (a *Announcer) Announce(update Update, targets []int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if targets == nil {
		targets = make([]int64, 0, len(a.listeners))
		for id := range a.listeners {
			targets = append(targets, id)
		}
	}

	for _, id := range targets {
		ql, ok := a.listeners[id]
		if !ok {
			continue
		}
		live := ql[:0]
		for _, l := range ql {
			select {
			case l.ch <- update:
				live = append(live, l)
			default:
				close(l.ch)
			}
		}
		if len(live) == 0 {
			delete(a.listeners, id)
		} else {
			a.listeners[id] = live
		}
	}
}
