package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"morghi/cards"
	"morghi/domain/actions"
	"morghi/domain/events"
)

// GameStatus is the lobby-facing lifecycle label.
type GameStatus string

const (
	StatusWaiting GameStatus = "waiting"
	StatusPlaying GameStatus = "playing"
)

// systemSender is the chat log sender for server-generated messages.
const systemSender = "server"

// reactionFoxDefense tags the reaction window a steal attempt opens.
const reactionFoxDefense = "fox_defense"

// Message is one append-only chat/event log entry.
type Message struct {
	ID     int64  `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   int64  `json:"time_ms"`
}

// Reaction is the pending-reaction slot: set when an attacking action is
// accepted, cleared when the designated player responds or the turn
// moves on. At most one may be pending, and while it is, only the
// expected action from the expected player is accepted.
type Reaction struct {
	Cause          string
	ExpectedAction string
	ActingPlayer   int64
	ReactingPlayer int64
}

// GameState is the per-viewer snapshot sent as the first stream update
// and from GET /games/{id}. Only the viewer's entry carries a hand.
type GameState struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    GameStatus    `json:"status"`
	IsStarted bool          `json:"is_started"`
	Players   []PlayerState `json:"players"`
	Messages  []Message     `json:"messages"`
}

// GameInfo is the lobby-listing summary.
type GameInfo struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Status   GameStatus `json:"status"`
	Players  []int64    `json:"players"`
	Capacity int        `json:"capacity"`
}

// Game is one session: a deck, the joined players, the turn order, the
// pending-reaction slot, the chat log, and the announcer pushing updates
// to connected listeners. All mutation goes through the single mutex;
// separate games are fully independent.
type Game struct {
	ID   string
	Name string

	mu          sync.Mutex
	started     bool
	players     map[int64]*Player
	order       []int64 // join order doubles as turn order
	ready       map[int64]bool
	deck        *cards.Deck
	turnCounter int
	current     int64
	hasCurrent  bool
	pending     *Reaction
	messages    []Message
	nextMsgID   int64
	announcer   *events.Announcer
	rng         *rand.Rand
}

func NewGame(name string) *Game {
	return &Game{
		ID:        uuid.NewString(),
		Name:      name,
		players:   make(map[int64]*Player),
		ready:     make(map[int64]bool),
		deck:      cards.NewDeck(),
		announcer: events.NewAnnouncer(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Join adds a player to a not-yet-started game. No cards are dealt until
// the game starts.
func (g *Game) Join(playerID int64, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return errors.New("game already started")
	}
	if _, exists := g.players[playerID]; exists {
		return errors.New("player already joined")
	}
	if len(g.players) >= cards.MaxPlayers {
		return errors.New("game is full")
	}

	g.players[playerID] = NewPlayer(playerID, name)
	g.order = append(g.order, playerID)
	return nil
}

// Ready marks a player ready. Re-marking is a no-op. Once every joined
// player is ready the game starts synchronously.
func (g *Game) Ready(playerID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return errors.New("game already started")
	}
	player, exists := g.players[playerID]
	if !exists {
		return errors.New("player not found")
	}
	if g.ready[playerID] {
		return nil
	}

	g.ready[playerID] = true
	g.postMessage(systemSender, fmt.Sprintf("%s is ready", player.Name))
	g.announcer.Announce(events.PlayerReady(playerID), nil)

	if len(g.ready) == len(g.players) {
		return g.startGame()
	}
	return nil
}

// startGame deals every player their starting hand and opens the first
// turn. Caller holds the lock.
func (g *Game) startGame() error {
	for _, id := range g.order {
		player := g.players[id]
		dealt, err := g.deck.Take(cards.HandSize)
		if err != nil {
			return fmt.Errorf("dealing starting hands: %w", err)
		}
		player.PutCards(dealt)
		g.announcer.Announce(events.HandChanged(id, player.Hand), []int64{id})
	}

	g.announcer.Announce(events.GameStart(), nil)
	g.started = true
	g.postMessage(systemSender, "Game Started")
	g.nextPlayer()
	return nil
}

// nextPlayer advances the turn to the next player in join order,
// cyclically, picking at random when no turn has happened yet. Clears
// any pending reaction. Caller holds the lock.
func (g *Game) nextPlayer() {
	g.pending = nil
	if len(g.order) == 0 {
		g.hasCurrent = false
		return
	}

	if !g.hasCurrent {
		g.current = g.order[g.rng.Intn(len(g.order))]
		g.hasCurrent = true
	} else {
		next := (g.orderIndex(g.current) + 1) % len(g.order)
		if next == 0 {
			g.turnCounter++
		}
		g.current = g.order[next]
	}

	g.announcer.Announce(events.Turn(g.current, g.players[g.current].Name), nil)
}

func (g *Game) orderIndex(playerID int64) int {
	for i, id := range g.order {
		if id == playerID {
			return i
		}
	}
	return -1
}

// Act is the single gameplay entry point. Validation short-circuits on
// the first failure and no handler mutates state before its own card
// check passes, so a rejected action never leaves the game half-changed.
func (g *Game) Act(playerID int64, action actions.Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started {
		return errors.New("game has not started")
	}

	if g.pending != nil {
		if action.Name() != g.pending.ExpectedAction {
			return fmt.Errorf("a %s reaction is pending: expected action %q, got %q",
				g.pending.Cause, g.pending.ExpectedAction, action.Name())
		}
		if playerID != g.pending.ReactingPlayer {
			return errors.New("it is not your reaction to play")
		}
	} else if !g.hasCurrent || playerID != g.current {
		return errors.New("It is not your turn")
	}

	player, exists := g.players[playerID]
	if !exists {
		return errors.New("player not found")
	}

	switch a := action.(type) {
	case actions.SkipTurn:
		return g.handleSkipTurn(player, a)
	case actions.LayEgg:
		return g.handleLayEgg(player, a)
	case actions.HatchChick:
		return g.handleHatchChick(player, a)
	case actions.StealEgg:
		return g.handleStealEgg(player, a)
	case actions.DefendEgg:
		return g.handleDefendEgg(player, a)
	case actions.BreakEgg:
		return g.handleBreakEgg(player, a)
	default:
		return fmt.Errorf("unknown action %q", action.Name())
	}
}

// consume removes the required cards from the player's hand, discards
// them to the reserve, draws replacements so the hand returns to its
// original size, and tells the player about their new hand. The card
// check is all-or-nothing, so a failure here leaves everything as it
// was. Caller holds the lock.
func (g *Game) consume(player *Player, indices []int, required []cards.Name) error {
	taken, err := player.TakeCards(indices, required)
	if err != nil {
		return err
	}
	g.deck.Put(taken)

	drawn, err := g.deck.Take(len(taken))
	if err != nil {
		return fmt.Errorf("refilling hand: %w", err)
	}
	player.PutCards(drawn)
	g.announcer.Announce(events.HandChanged(player.ID, player.Hand), []int64{player.ID})
	return nil
}

func (g *Game) handleSkipTurn(player *Player, a actions.SkipTurn) error {
	if len(a.CardIndices) != 1 {
		return errors.New("skipping a turn discards exactly one card")
	}
	i := a.CardIndices[0]
	if i < 0 || i >= len(player.Hand) {
		return fmt.Errorf("card index %d out of range", i)
	}

	if err := g.consume(player, a.CardIndices, []cards.Name{player.Hand[i]}); err != nil {
		return err
	}
	g.postMessage(systemSender, fmt.Sprintf("%s skipped their turn", player.Name))
	g.nextPlayer()
	return nil
}

func (g *Game) handleLayEgg(player *Player, a actions.LayEgg) error {
	if err := g.consume(player, a.CardIndices, cards.LayEggCost); err != nil {
		return err
	}
	player.Eggs++
	g.announcer.Announce(events.ScoresChanged(player.ID, player.Eggs, player.Chickens), nil)
	g.postMessage(systemSender, fmt.Sprintf("%s laid an egg", player.Name))
	g.nextPlayer()
	return nil
}

func (g *Game) handleHatchChick(player *Player, a actions.HatchChick) error {
	if player.Eggs == 0 {
		return errors.New("you need an egg to hatch a chick")
	}

	if err := g.consume(player, a.CardIndices, cards.HatchChickCost); err != nil {
		return err
	}
	player.Eggs--
	player.Chickens++
	g.announcer.Announce(events.ScoresChanged(player.ID, player.Eggs, player.Chickens), nil)
	g.postMessage(systemSender, fmt.Sprintf("%s hatched a chick", player.Name))
	g.nextPlayer()
	return nil
}

func (g *Game) handleStealEgg(player *Player, a actions.StealEgg) error {
	target, exists := g.players[a.Target]
	if !exists {
		return errors.New("target player not found")
	}
	if target.ID == player.ID {
		return errors.New("you cannot steal from yourself")
	}
	if target.Eggs == 0 {
		return fmt.Errorf("%s has no eggs to steal", target.Name)
	}

	if err := g.consume(player, a.CardIndices, cards.StealEggCost); err != nil {
		return err
	}

	// The steal resolves once the target answers; the turn holds here.
	g.pending = &Reaction{
		Cause:          reactionFoxDefense,
		ExpectedAction: actions.NameDefendEgg,
		ActingPlayer:   player.ID,
		ReactingPlayer: target.ID,
	}
	g.postMessage(systemSender, fmt.Sprintf("%s sent the fox after %s's eggs", player.Name, target.Name))
	return nil
}

// handleDefendEgg resolves a pending steal. Declining to defend, or
// choosing to defend without the cards for it, are different things: a
// failed card check leaves the reaction pending so the defender can
// answer again, while an explicit decline lets the steal succeed.
func (g *Game) handleDefendEgg(player *Player, a actions.DefendEgg) error {
	if g.pending == nil || g.pending.Cause != reactionFoxDefense {
		return errors.New("there is no steal to defend against")
	}
	if a.Defender != 0 && a.Defender != player.ID {
		return errors.New("defender does not match the reacting player")
	}

	if a.DoesDefend {
		if err := g.consume(player, a.CardIndices, cards.DefendCost); err != nil {
			return err
		}
		g.postMessage(systemSender, fmt.Sprintf("%s fended off the fox", player.Name))
		g.nextPlayer()
		return nil
	}

	// Steal goes through: one egg moves to the attacker.
	attacker := g.players[g.pending.ActingPlayer]
	if player.Eggs > 0 {
		player.Eggs--
		g.announcer.Announce(events.ScoresChanged(player.ID, player.Eggs, player.Chickens), nil)
		if attacker != nil {
			attacker.Eggs++
			g.announcer.Announce(events.ScoresChanged(attacker.ID, attacker.Eggs, attacker.Chickens), nil)
		}
	}
	if attacker != nil {
		g.postMessage(systemSender, fmt.Sprintf("%s stole an egg from %s", attacker.Name, player.Name))
	}
	g.nextPlayer()
	return nil
}

func (g *Game) handleBreakEgg(player *Player, a actions.BreakEgg) error {
	target, exists := g.players[a.Target]
	if !exists {
		return errors.New("target player not found")
	}
	if target.ID == player.ID {
		return errors.New("you cannot break your own eggs")
	}
	if target.Eggs == 0 {
		return fmt.Errorf("%s has no eggs to break", target.Name)
	}

	if err := g.consume(player, a.CardIndices, cards.BreakEggCost); err != nil {
		return err
	}

	broken := min(2, target.Eggs)
	target.Eggs -= broken
	g.announcer.Announce(events.ScoresChanged(target.ID, target.Eggs, target.Chickens), nil)
	g.postMessage(systemSender, fmt.Sprintf("%s broke %d of %s's eggs", player.Name, broken, target.Name))
	g.nextPlayer()
	return nil
}

// Leave removes a player from the session. Their hand goes back to the
// deck's reserve so the card economy stays closed. If it was their turn,
// the turn moves to their successor; a reaction they were party to is
// cancelled.
func (g *Game) Leave(playerID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, exists := g.players[playerID]
	if !exists {
		return errors.New("player not found")
	}

	wasCurrent := g.hasCurrent && g.current == playerID
	if g.pending != nil && (g.pending.ActingPlayer == playerID || g.pending.ReactingPlayer == playerID) {
		g.pending = nil
	}

	idx := g.orderIndex(playerID)
	g.deck.Put(player.Hand)
	delete(g.players, playerID)
	delete(g.ready, playerID)
	g.order = append(g.order[:idx], g.order[idx+1:]...)

	g.postMessage(systemSender, fmt.Sprintf("%s left the game", player.Name))

	// The leaver may have been the last player not yet ready.
	if !g.started && len(g.players) > 0 && len(g.ready) == len(g.players) {
		return g.startGame()
	}

	if wasCurrent {
		if len(g.order) == 0 {
			g.hasCurrent = false
		} else {
			// After removal the old successor sits at the leaver's index.
			next := idx % len(g.order)
			if next == 0 && idx > 0 {
				g.turnCounter++
			}
			g.current = g.order[next]
			g.announcer.Announce(events.Turn(g.current, g.players[g.current].Name), nil)
		}
	}
	return nil
}

// Listen registers a new update stream for the player. The transport is
// responsible for sending a full state snapshot first and for removing
// the listener when the client goes away.
func (g *Game) Listen(playerID int64) *events.Listener {
	return g.announcer.AddListener(playerID)
}

// RemoveListener deregisters a listener obtained from Listen.
func (g *Game) RemoveListener(l *events.Listener) {
	g.announcer.RemoveListener(l)
}

// State builds the snapshot for one viewer: everyone public, the viewer
// private.
func (g *Game) State(viewerID int64) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]PlayerState, 0, len(g.order))
	for _, id := range g.order {
		player := g.players[id]
		if id == viewerID {
			players = append(players, player.PrivateState(g.ready[id]))
		} else {
			players = append(players, player.PublicState(g.ready[id]))
		}
	}

	return GameState{
		ID:        g.ID,
		Name:      g.Name,
		Status:    g.status(),
		IsStarted: g.started,
		Players:   players,
		Messages:  append([]Message(nil), g.messages...),
	}
}

// Info is the lobby-listing summary.
func (g *Game) Info() GameInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GameInfo{
		ID:       g.ID,
		Name:     g.Name,
		Status:   g.status(),
		Players:  append([]int64(nil), g.order...),
		Capacity: cards.MaxPlayers,
	}
}

func (g *Game) status() GameStatus {
	if g.started {
		return StatusPlaying
	}
	return StatusWaiting
}

// postMessage appends to the chat log and announces the new entry.
// Caller holds the lock.
func (g *Game) postMessage(sender, text string) {
	g.nextMsgID++
	msg := Message{
		ID:     g.nextMsgID,
		Sender: sender,
		Text:   text,
		Time:   time.Now().UnixMilli(),
	}
	g.messages = append(g.messages, msg)
	g.announcer.Announce(events.Message(msg), nil)
}
