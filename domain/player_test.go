package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morghi/cards"
)

func TestTakeCardsSuccess(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Hen, cards.Rooster, cards.Nest, cards.Trap}

	taken, err := p.TakeCards([]int{0, 1, 2}, []cards.Name{cards.Hen, cards.Rooster, cards.Nest})
	require.NoError(t, err)
	assert.ElementsMatch(t, []cards.Name{cards.Hen, cards.Rooster, cards.Nest}, taken)
	assert.Equal(t, []cards.Name{cards.Trap}, p.Hand)
}

func TestTakeCardsOrderIndependent(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Trap, cards.Nest, cards.Hen, cards.Rooster}

	// Indices in arbitrary order still resolve against the same multiset.
	taken, err := p.TakeCards([]int{3, 1, 2}, []cards.Name{cards.Hen, cards.Rooster, cards.Nest})
	require.NoError(t, err)
	assert.ElementsMatch(t, []cards.Name{cards.Hen, cards.Rooster, cards.Nest}, taken)
	assert.Equal(t, []cards.Name{cards.Trap}, p.Hand)
}

func TestTakeCardsMismatchLeavesHandUntouched(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Hen, cards.Hen, cards.Fox, cards.Trap}
	before := append([]cards.Name(nil), p.Hand...)

	_, err := p.TakeCards([]int{0, 1, 2}, []cards.Name{cards.Hen, cards.Rooster, cards.Nest})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
	assert.Contains(t, err.Error(), "count is off", "mismatch error names an offending card")
	assert.Equal(t, before, p.Hand)
}

func TestTakeCardsIndexOutOfRange(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Hen, cards.Rooster}
	before := append([]cards.Name(nil), p.Hand...)

	_, err := p.TakeCards([]int{0, 5}, []cards.Name{cards.Hen, cards.Rooster})
	assert.Error(t, err)
	assert.Equal(t, before, p.Hand)

	_, err = p.TakeCards([]int{-1, 0}, []cards.Name{cards.Hen, cards.Rooster})
	assert.Error(t, err)
	assert.Equal(t, before, p.Hand)
}

func TestTakeCardsDuplicateIndex(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Rooster, cards.Rooster, cards.Hen}
	before := append([]cards.Name(nil), p.Hand...)

	_, err := p.TakeCards([]int{0, 0}, []cards.Name{cards.Rooster, cards.Rooster})
	assert.Error(t, err)
	assert.Equal(t, before, p.Hand)
}

func TestTakeCardsCountMismatch(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.Hand = []cards.Name{cards.Hen, cards.Rooster, cards.Nest}

	_, err := p.TakeCards([]int{0}, []cards.Name{cards.Hen, cards.Rooster})
	assert.Error(t, err)
	assert.Len(t, p.Hand, 3)
}

func TestPutCards(t *testing.T) {
	p := NewPlayer(1, "Ava")
	p.PutCards([]cards.Name{cards.Snake, cards.Fox})
	assert.Equal(t, []cards.Name{cards.Snake, cards.Fox}, p.Hand)
}

func TestStateProjections(t *testing.T) {
	p := NewPlayer(7, "Ava")
	p.Hand = []cards.Name{cards.Hen, cards.Trap}
	p.Eggs = 2
	p.Chickens = 1

	public := p.PublicState(true)
	assert.Empty(t, public.Hand, "public view must not leak the hand")
	assert.Equal(t, int64(7), public.ID)
	assert.Equal(t, 2, public.Eggs)
	assert.True(t, public.Ready)

	private := p.PrivateState(true)
	assert.Equal(t, []cards.Name{cards.Hen, cards.Trap}, private.Hand)

	// The projection holds a copy, not the live hand.
	private.Hand[0] = cards.Snake
	assert.Equal(t, cards.Hen, p.Hand[0])
}
