package domain

import (
	"fmt"
	"sort"

	"morghi/cards"
)

// Player holds one participant's hand and score counters.
type Player struct {
	ID       int64
	Name     string
	Hand     []cards.Name
	Eggs     int
	Chickens int
}

func NewPlayer(id int64, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: make([]cards.Name, 0, cards.HandSize),
	}
}

// PlayerState is the wire projection of a player. Hand is only populated
// for the viewer's own entry, never for opponents.
type PlayerState struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Ready    bool         `json:"ready"`
	Eggs     int          `json:"eggs"`
	Chickens int          `json:"chickens"`
	Hand     []cards.Name `json:"hand,omitempty"`
}

// PublicState projects the player without their hand.
func (p *Player) PublicState(ready bool) PlayerState {
	return PlayerState{
		ID:       p.ID,
		Name:     p.Name,
		Ready:    ready,
		Eggs:     p.Eggs,
		Chickens: p.Chickens,
	}
}

// PrivateState projects the player including their hand.
func (p *Player) PrivateState(ready bool) PlayerState {
	state := p.PublicState(ready)
	state.Hand = append([]cards.Name(nil), p.Hand...)
	return state
}

// TakeCards removes the cards at the given hand indices, but only if they
// match the required multiset exactly. All-or-nothing: on any failure the
// hand is left untouched. The removed cards are returned in no particular
// order; the caller refills the hand afterwards.
func (p *Player) TakeCards(indices []int, required []cards.Name) ([]cards.Name, error) {
	if len(indices) != len(required) {
		return nil, fmt.Errorf("expected %d cards, got %d", len(required), len(indices))
	}

	need := make(map[cards.Name]int, len(required))
	for _, name := range required {
		need[name]++
	}

	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(p.Hand) {
			return nil, fmt.Errorf("card index %d out of range", i)
		}
		if seen[i] {
			return nil, fmt.Errorf("duplicate card index %d", i)
		}
		seen[i] = true
		need[p.Hand[i]]--
	}
	for name, count := range need {
		if count != 0 {
			return nil, fmt.Errorf("selected cards do not match the required %v: %s count is off", required, name)
		}
	}

	// Remove from the highest index down so the remaining ones stay valid.
	ordered := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	taken := make([]cards.Name, 0, len(ordered))
	for _, i := range ordered {
		taken = append(taken, p.Hand[i])
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	}
	return taken, nil
}

// PutCards appends cards to the hand.
func (p *Player) PutCards(newCards []cards.Name) {
	p.Hand = append(p.Hand, newCards...)
}
