package service

import (
	"fmt"

	"github.com/benbeisheim/chessmoves-backend/internal/model"
	"github.com/benbeisheim/chessmoves-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
	startFEN    string
}

// NewGameService wraps gameManager. Games created without a FEN start from
// startFEN, or the standard setup when that is empty too.
func NewGameService(gameManager *GameManager, startFEN string) *GameService {
	return &GameService{
		gameManager: gameManager,
		startFEN:    startFEN,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame(fen string) (string, error) {
	if fen == "" {
		fen = gs.startFEN
	}

	var board *model.BoardState
	toMove := model.White
	if fen != "" {
		var err error
		board, toMove, err = model.BoardFromFEN(fen)
		if err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, board, toMove); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) PossibleMoves(gameID string, from model.Position) ([]model.Position, error) {
	return gs.gameManager.PossibleMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

// Send delivers a message to one player's game connection.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
