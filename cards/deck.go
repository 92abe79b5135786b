package cards

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInsufficientCards is returned by Take when the whole economy holds
// fewer cards than requested. With the standard composition this means a
// caller bug, not a recoverable game situation.
var ErrInsufficientCards = errors.New("not enough cards in deck")

// Deck splits the card economy into a drawable pile (front is the top)
// and a reserve of discarded cards waiting to be reshuffled in.
type Deck struct {
	drawable []Name
	reserve  []Name
	rng      *rand.Rand
}

// NewDeck builds a fully populated, shuffled deck from the standard
// composition.
func NewDeck() *Deck {
	d := &Deck{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for name, count := range Composition {
		for i := 0; i < count; i++ {
			d.drawable = append(d.drawable, name)
		}
	}
	d.shuffle(d.drawable)
	return d
}

// Take removes count cards from the top of the drawable pile. If the
// pile runs short, the reserve is shuffled and appended first. Fails
// without mutating either pile when the whole deck holds fewer than
// count cards.
func (d *Deck) Take(count int) ([]Name, error) {
	if len(d.drawable)+len(d.reserve) < count {
		return nil, fmt.Errorf("%w: expected >= %d, found %d",
			ErrInsufficientCards, count, len(d.drawable)+len(d.reserve))
	}
	if len(d.drawable) < count {
		d.refill()
	}

	taken := make([]Name, count)
	copy(taken, d.drawable[:count])
	d.drawable = d.drawable[count:]
	return taken, nil
}

// Put returns cards to the reserve. No ordering is promised; the reserve
// is shuffled before it re-enters play.
func (d *Deck) Put(cards []Name) {
	d.reserve = append(d.reserve, cards...)
}

// DrawableCount reports how many cards sit in the drawable pile.
func (d *Deck) DrawableCount() int {
	return len(d.drawable)
}

// ReserveCount reports how many cards sit in the reserve.
func (d *Deck) ReserveCount() int {
	return len(d.reserve)
}

// Size is the total number of cards held by the deck across both piles.
func (d *Deck) Size() int {
	return len(d.drawable) + len(d.reserve)
}

// refill shuffles the reserve and moves it under the drawable pile.
func (d *Deck) refill() {
	d.shuffle(d.reserve)
	d.drawable = append(d.drawable, d.reserve...)
	d.reserve = nil
}

func (d *Deck) shuffle(pile []Name) {
	d.rng.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
}
