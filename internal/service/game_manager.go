package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessmoves-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	clock            time.Duration
	mu               sync.RWMutex
	done             chan struct{}
	closeOnce        sync.Once
}

// NewGameManager starts the matchmaking loop, which pairs queued players
// every interval until Close is called.
func NewGameManager(clock, interval time.Duration) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		clock:            clock,
		done:             make(chan struct{}),
	}

	go gm.processMatchmaking(interval)

	return gm
}

func (gm *GameManager) Close() {
	gm.closeOnce.Do(func() { close(gm.done) })
}

// RegisterMatchmakingChannel sets the channel a queued player's match event
// is delivered on. The channel should be buffered; delivery never blocks.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		// Remove from map first to prevent any new writes
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets ch and takes the player out of the
// queue. It does nothing once ch has been replaced by a newer registration
// or consumed by a match. The channel is left open for its creator to close.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; !ok || current != ch {
		return
	}
	delete(gm.matchingChannels, playerID)
	gm.queue.Remove(playerID)
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			gm.matchQueuedPlayers()
		}
	}
}

func (gm *GameManager) matchQueuedPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID, nil, model.White, gm.clock)
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: adding player %s: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: adding player %s: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game
		log.Printf("matchmaking: paired %s and %s in game %s", player1.ID, player2.ID, gameID)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch sends the event and closes the player's channel. gm.mu must be held.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Printf("matchmaking: no channel for player %s", playerID)
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- mustJSON(event):
	default:
		log.Printf("matchmaking: failed to notify player %s", playerID)
	}
	close(ch)
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// CreateGame adds a game on board. A nil board means the standard setup.
func (gm *GameManager) CreateGame(gameID string, board *model.BoardState, toMove model.Color) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%s: %w", gameID, ErrGameExists)
	}

	gm.games[gameID] = model.NewGame(gameID, board, toMove, gm.clock)
	log.Printf("created game %s", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) PossibleMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.PossibleMoves(from)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
