package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()

	assert.Equal(t, TotalCards(), deck.Size())
	assert.Equal(t, TotalCards(), deck.DrawableCount())
	assert.Equal(t, 0, deck.ReserveCount())

	// Every configured copy is present in the drawable pile.
	counts := map[Name]int{}
	for deck.DrawableCount() > 0 {
		taken, err := deck.Take(1)
		require.NoError(t, err)
		counts[taken[0]]++
	}
	assert.Equal(t, Composition, counts)
}

func TestTakeFromTop(t *testing.T) {
	deck := &Deck{
		drawable: []Name{Hen, Fox, Snake, Nest},
		rng:      rand.New(rand.NewSource(1)),
	}

	taken, err := deck.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []Name{Hen, Fox}, taken)
	assert.Equal(t, 2, deck.DrawableCount())
}

func TestTakeRefillsFromReserve(t *testing.T) {
	deck := &Deck{
		drawable: []Name{Hen},
		reserve:  []Name{Fox, Fox, Fox},
		rng:      rand.New(rand.NewSource(1)),
	}

	taken, err := deck.Take(3)
	require.NoError(t, err)
	assert.Len(t, taken, 3)
	assert.Equal(t, Hen, taken[0], "drawable pile stays on top after a refill")
	assert.Equal(t, 1, deck.DrawableCount())
	assert.Equal(t, 0, deck.ReserveCount())
}

func TestTakeFailsWithoutMutation(t *testing.T) {
	deck := &Deck{
		drawable: []Name{Hen, Rooster},
		reserve:  []Name{Fox},
		rng:      rand.New(rand.NewSource(1)),
	}

	_, err := deck.Take(4)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 2, deck.DrawableCount())
	assert.Equal(t, 1, deck.ReserveCount())
}

func TestCardConservation(t *testing.T) {
	deck := NewDeck()
	total := deck.Size()
	var hands [][]Name

	// Interleave takes and puts and check the economy never changes size.
	for i := 0; i < 10; i++ {
		taken, err := deck.Take(4)
		require.NoError(t, err)
		hands = append(hands, taken)

		if i%3 == 0 && len(hands) > 0 {
			deck.Put(hands[0])
			hands = hands[1:]
		}

		inHands := 0
		for _, h := range hands {
			inHands += len(h)
		}
		assert.Equal(t, total, deck.Size()+inHands)
	}
}
