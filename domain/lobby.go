package domain

import (
	"errors"
	"sync"
)

// Lobby is the registry of open games. Games are independent once
// created; the lobby only maps ids to sessions.
type Lobby struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewLobby() *Lobby {
	return &Lobby{
		games: make(map[string]*Game),
	}
}

// CreateGame opens a new session and registers it.
func (l *Lobby) CreateGame(name string) *Game {
	game := NewGame(name)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.games[game.ID] = game
	return game
}

// GetGame retrieves a game by id.
func (l *Lobby) GetGame(id string) (*Game, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	game, exists := l.games[id]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

// Games lists every registered game.
func (l *Lobby) Games() []*Game {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := make([]*Game, 0, len(l.games))
	for _, game := range l.games {
		list = append(list, game)
	}
	return list
}
