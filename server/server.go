package server

import (
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sanity-io/litter"

	"morghi/domain"
	"morghi/domain/actions"
)

// Server is the HTTP transport in front of the game engine: it
// authenticates requests, resolves games by id, and relays the engine's
// results and event streams.
type Server struct {
	cfg   Config
	lobby *domain.Lobby
	rng   *rand.Rand
}

func New(cfg Config) *Server {
	return &Server{
		cfg:   cfg,
		lobby: domain.NewLobby(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins serving on the configured port.
func (s *Server) Start() error {
	log.Printf("Starting server on port %s", s.cfg.Port)
	return http.ListenAndServe("0.0.0.0:"+s.cfg.Port, s.Routes())
}

// Routes builds the full route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/games", s.handleListGames)
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{gameID}", s.handleGetGame)
		r.Post("/games/{gameID}/join", s.handleJoin)
		r.Post("/games/{gameID}/ready", s.handleReady)
		r.Post("/games/{gameID}/leave", s.handleLeave)
		r.Post("/games/{gameID}/action", s.handleAction)
		r.Get("/games/{gameID}/listen", s.handleListen)
		if s.cfg.Debug {
			r.Get("/debug/games/{gameID}", s.handleDebugGame)
		}
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) gameFromRequest(w http.ResponseWriter, r *http.Request) (*domain.Game, bool) {
	game, err := s.lobby.GetGame(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	return game, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	playerID := s.rng.Int63n(1_000_000)
	token, err := s.issueToken(playerID, req.Name)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"player": map[string]any{
			"id":   playerID,
			"name": req.Name,
		},
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.lobby.Games()
	infos := make([]domain.GameInfo, 0, len(games))
	for _, game := range games {
		infos = append(infos, game.Info())
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": infos})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	game := s.lobby.CreateGame(req.Name)
	log.Printf("Game %q created with id %s", game.Name, game.ID)
	writeJSON(w, http.StatusCreated, game.Info())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, game.State(identityFrom(r).PlayerID))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	ident := identityFrom(r)
	if err := game.Join(ident.PlayerID, ident.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	if err := game.Ready(identityFrom(r).PlayerID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	if err := game.Leave(identityFrom(r).PlayerID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	action, err := actions.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := game.Act(identityFrom(r).PlayerID, action); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDebugGame dumps the viewer's snapshot in litter's readable form.
// Only routed when DEBUG is set.
func (s *Server) handleDebugGame(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(litter.Sdump(game.State(identityFrom(r).PlayerID))))
}
