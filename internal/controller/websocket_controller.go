package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessmoves-backend/internal/model"
	"github.com/benbeisheim/chessmoves-backend/internal/service"
	"github.com/benbeisheim/chessmoves-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

type selectPayload struct {
	Square model.Position `json:"square"`
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		// a duplicate has already been closed by the game
		log.Printf("failed to register connection for player %s: %v", playerID, err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(gameID, playerID, err)
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeSelect:
		var sel selectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return err
		}
		moves, err := wsc.gameService.PossibleMoves(gameID, sel.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, movesResponse{From: sel.Square, Moves: moves})
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, playerID, reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	msg, mErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		return
	}
	if sErr := wsc.gameService.Send(gameID, playerID, msg); sErr != nil {
		log.Printf("failed to send error to player %s: %v", playerID, sErr)
	}
}

// HandleMatchmaking queues the player and blocks until a match is found or
// the connection closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		log.Printf("failed to register matchmaking channel: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
		c.WriteJSON(msg)
		return
	}

	// ReadMessage only returns once the client goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)})
	case <-closed:
	}
}
