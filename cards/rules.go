package cards

// HandSize is the number of cards dealt to each player at game start and
// restored after every successful play.
const HandSize = 4

// MaxPlayers is the per-game seat capacity.
const MaxPlayers = 8

// Composition maps each card name to how many copies exist in a game.
// The economy is closed: these cards only ever move between the deck's
// drawable pile, its reserve, and player hands.
var Composition = map[Name]int{
	Hen:     11,
	Rooster: 11,
	Fox:     7,
	Snake:   4,
	Nest:    11,
	Trap:    6,
}

// TotalCards is the size of the closed card economy.
func TotalCards() int {
	total := 0
	for _, count := range Composition {
		total += count
	}
	return total
}

// Play costs: the exact multiset of cards an action consumes from the
// actor's hand.
var (
	LayEggCost     = []Name{Hen, Rooster, Nest}
	HatchChickCost = []Name{Hen, Hen}
	StealEggCost   = []Name{Fox}
	DefendCost     = []Name{Rooster, Rooster}
	BreakEggCost   = []Name{Snake, Snake}
)
