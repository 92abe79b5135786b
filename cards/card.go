package cards

// Name identifies a card. Cards are fungible tokens: the deck and player
// hands hold bare names, not card objects with their own state.
type Name string

const (
	Hen     Name = "Hen"
	Rooster Name = "Rooster"
	Fox     Name = "Fox"
	Snake   Name = "Snake"
	Nest    Name = "Nest"
	Trap    Name = "Trap"
)
