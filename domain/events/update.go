package events

import "morghi/cards"

// Update is the wire shape pushed to listeners: {"event": ..., "data": ...}.
type Update struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// TurnData names the player whose turn just started.
type TurnData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HandData carries a player's new hand. Only ever announced to that
// player: hands are private.
type HandData struct {
	Player int64        `json:"player"`
	Hand   []cards.Name `json:"hand"`
}

// ScoresData carries a player's updated score counters.
type ScoresData struct {
	Player   int64 `json:"player"`
	Eggs     int   `json:"eggs"`
	Chickens int   `json:"chickens"`
}

// State wraps a full per-viewer game snapshot. Always the first update
// sent on a fresh listener stream.
func State(state any) Update {
	return Update{Event: "state", Data: state}
}

// Message wraps a new chat log entry.
func Message(message any) Update {
	return Update{Event: "message", Data: message}
}

// PlayerReady announces that a player marked themselves ready.
func PlayerReady(playerID int64) Update {
	return Update{Event: "player_ready", Data: playerID}
}

// GameStart announces the transition out of the lobby.
func GameStart() Update {
	return Update{Event: "game_start", Data: nil}
}

// Turn announces the new current player.
func Turn(playerID int64, playerName string) Update {
	return Update{Event: "turn", Data: TurnData{ID: playerID, Name: playerName}}
}

// HandChanged announces a player's refreshed hand. The hand is copied:
// listeners consume updates concurrently with further game mutation.
func HandChanged(playerID int64, hand []cards.Name) Update {
	return Update{Event: "hand_changed", Data: HandData{
		Player: playerID,
		Hand:   append([]cards.Name(nil), hand...),
	}}
}

// ScoresChanged announces a player's new egg/chicken counts.
func ScoresChanged(playerID int64, eggs, chickens int) Update {
	return Update{Event: "scores_changed", Data: ScoresData{Player: playerID, Eggs: eggs, Chickens: chickens}}
}

// Ping is a keepalive emitted when a listener stream has been idle.
func Ping() Update {
	return Update{Event: "ping", Data: nil}
}
