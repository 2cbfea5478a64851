package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessmoves-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const (
	ResolveKingCaptured = "king-captured"
	ResolveNoMoves      = "no-moves"
	ResolveTimeout      = "timeout"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex                 // also serializes writes
}

// Game owns one board and serializes every query and mutation on it.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Resolve        *string        `json:"resolve"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// CapturedPieces lists the pieces of each color that have been taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewGame starts a game on board with toMove to play. A nil board means the
// standard starting position.
func NewGame(id string, board *BoardState, toMove Color, clock time.Duration) *Game {
	if board == nil {
		board = NewStandardBoard()
		toMove = White
	}
	return &Game{
		ID:          id,
		state:       newGameState(board, toMove, clock),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState(board *BoardState, toMove Color, clock time.Duration) GameState {
	timeLeft := int(clock.Milliseconds() / 100)
	return GameState{
		Board:       board,
		ToMove:      toMove,
		MoveHistory: make([]Move, 0),
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		Players: Players{
			White: ClientPlayer{TimeLeft: timeLeft},
			Black: ClientPlayer{TimeLeft: timeLeft},
		},
	}
}

// AddPlayer seats a player, white first. A player already seated gets their
// existing color back.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White.ID = playerID
		g.state.Players.White.Color = White
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black.ID = playerID
		g.state.Players.Black.Color = Black
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	if g.state.Players.White.ID == playerID {
		return White, true
	}
	if g.state.Players.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

func (g *Game) seatID(color Color) string {
	if color == White {
		return g.state.Players.White.ID
	}
	return g.state.Players.Black.ID
}

// GetState returns a copy of the game state that is safe to read after the
// lock is released.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := g.state
	state.Board = g.state.Board.Clone()
	state.MoveHistory = append([]Move(nil), g.state.MoveHistory...)
	state.CapturedPieces = CapturedPieces{
		White: append([]Piece{}, g.state.CapturedPieces.White...),
		Black: append([]Piece{}, g.state.CapturedPieces.Black...),
	}
	state.Players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	state.Players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// PossibleMoves returns the destinations of the piece standing on from.
func (g *Game) PossibleMoves(from Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, ok := g.state.Board.PieceAt(from)
	if !ok {
		return nil, fmt.Errorf("square %s: %w", from, ErrNoPiece)
	}
	return piece.PossibleMoves(g.state.Board), nil
}

// MakeMove validates and applies a move for playerID. When the seat of the
// side to move is taken, only that player may move.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	if seat := g.seatID(g.state.ToMove); seat != "" && seat != playerID {
		return ErrNotYourTurn
	}
	if g.clockFor(g.state.ToMove).Expired() {
		g.resolve(ResolveTimeout)
		return ErrGameOver
	}
	if err := g.validateMove(move); err != nil {
		return err
	}

	g.clockFor(g.state.ToMove).Stop()
	if err := g.executeMove(move); err != nil {
		return err
	}
	if g.state.Resolve == nil {
		g.clockFor(g.state.ToMove).Start()
	}

	log.Printf("game %s: %s", g.ID, g.state.LastMoveNotation())
	g.broadcastLocked()
	return nil
}

func (g *Game) validateMove(move WSMove) error {
	piece, ok := g.state.Board.PieceAt(move.From)
	if !ok {
		return fmt.Errorf("square %s: %w", move.From, ErrNoPiece)
	}
	if piece.Color != g.state.ToMove {
		return ErrNotYourTurn
	}
	for _, to := range piece.PossibleMoves(g.state.Board) {
		if to == move.To {
			return nil
		}
	}
	return fmt.Errorf("%s %s-%s: %w", piece.Type, move.From, move.To, ErrIllegalMove)
}

func (g *Game) executeMove(move WSMove) error {
	piece, _ := g.state.Board.PieceAt(move.From)
	before := *piece

	captured, err := g.state.Board.Apply(move.From, move.To)
	if err != nil {
		return err
	}

	ply := &Ply{
		Piece:    before,
		From:     move.From,
		To:       move.To,
		Notation: plyNotation(piece, move.From, move.To, captured != nil),
	}
	g.state.Sound = "move"
	if captured != nil {
		ply.CapturedPiece = captured.Clone()
		g.state.Sound = "capture"
		switch captured.Color {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
		}
	}
	g.recordPly(ply)
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}

	g.state.ToMove = g.state.ToMove.Opponent()

	if captured != nil && captured.Type == King {
		g.resolve(ResolveKingCaptured)
	} else if len(g.state.Board.MovesFor(g.state.ToMove)) == 0 {
		g.resolve(ResolveNoMoves)
	}
	return nil
}

func (g *Game) recordPly(ply *Ply) {
	if ply.Piece.Color == White {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{WhitePly: ply})
		return
	}
	last := len(g.state.MoveHistory) - 1
	if last >= 0 && g.state.MoveHistory[last].BlackPly == nil {
		g.state.MoveHistory[last].BlackPly = ply
		return
	}
	g.state.MoveHistory = append(g.state.MoveHistory, Move{BlackPly: ply})
}

func (g *Game) resolve(result string) {
	g.state.Resolve = &result
	g.whiteClock.Stop()
	g.blackClock.Stop()
	log.Printf("game %s resolved: %s", g.ID, result)
}

func (g *Game) clockFor(color Color) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

// LastMoveNotation returns the notation of the most recent ply, or "".
func (s GameState) LastMoveNotation() string {
	if len(s.MoveHistory) == 0 {
		return ""
	}
	last := s.MoveHistory[len(s.MoveHistory)-1]
	if last.BlackPly != nil {
		return last.BlackPly.Notation
	}
	if last.WhitePly != nil {
		return last.WhitePly.Notation
	}
	return ""
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.canSpectate()
	if _, seated := g.seatOf(playerID); seated {
		isAuthorized = true
	}
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return ErrConnectionExists
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	g.broadcastLocked()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection forgets conn, but only while it is still the
// player's registered connection.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistered connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes one message to a single player's connection, if any.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return nil
	}
	return conn.WriteJSON(msg)
}

// broadcastLocked encodes the state while g.mu is held and sends it in the
// background.
func (g *Game) broadcastLocked() {
	payload, err := json.Marshal(g.snapshot())
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	go g.broadcast(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

func (g *Game) broadcast(msg ws.Message) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
