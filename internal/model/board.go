package model

import "fmt"

const BoardSize = 8

// BoardState is an 8x8 grid indexed [row][col]. Row 0 is White's back rank.
type BoardState struct {
	Board [][]*Piece `json:"board"`
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() *BoardState {
	board := &BoardState{}
	for i := 0; i < BoardSize; i++ {
		board.Board = append(board.Board, make([]*Piece, BoardSize))
	}
	return board
}

// NewStandardBoard returns the initial chess position.
func NewStandardBoard() *BoardState {
	board := NewBoard()
	for col, t := range backRank {
		board.Place(NewPiece(t, White, Position{Row: 0, Col: col}))
		board.Place(NewPiece(Pawn, White, Position{Row: 1, Col: col}))
		board.Place(NewPiece(Pawn, Black, Position{Row: BoardSize - 2, Col: col}))
		board.Place(NewPiece(t, Black, Position{Row: BoardSize - 1, Col: col}))
	}
	return board
}

func (b *BoardState) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

func (b *BoardState) PieceAt(pos Position) (*Piece, bool) {
	if !b.InBounds(pos) {
		return nil, false
	}
	piece := b.Board[pos.Row][pos.Col]
	return piece, piece != nil
}

func (b *BoardState) ColorAt(pos Position) (Color, bool) {
	piece, ok := b.PieceAt(pos)
	if !ok {
		return "", false
	}
	return piece.Color, true
}

// Place puts the piece on the square named by its own position, replacing
// whatever was there.
func (b *BoardState) Place(piece *Piece) {
	b.Board[piece.Position.Row][piece.Position.Col] = piece
}

func (b *BoardState) Remove(pos Position) *Piece {
	piece, ok := b.PieceAt(pos)
	if !ok {
		return nil
	}
	b.Board[pos.Row][pos.Col] = nil
	return piece
}

// Apply commits a move from one square to another. A piece standing on the
// destination is flagged as captured and returned. Apply does not check that
// the move is one of the piece's possible moves.
func (b *BoardState) Apply(from, to Position) (*Piece, error) {
	if !b.InBounds(from) || !b.InBounds(to) {
		return nil, fmt.Errorf("move %s-%s: out of bounds", from, to)
	}
	piece, ok := b.PieceAt(from)
	if !ok {
		return nil, fmt.Errorf("move %s-%s: %w", from, to, ErrNoPiece)
	}
	captured := b.Remove(to)
	if captured != nil {
		captured.Captured = true
	}
	b.Board[from.Row][from.Col] = nil
	b.Board[to.Row][to.Col] = piece
	piece.UpdatePosition(to)
	return captured, nil
}

// Clone copies the board and every piece on it, so moves can be tried on the
// copy without touching the original.
func (b *BoardState) Clone() *BoardState {
	clone := NewBoard()
	for _, row := range b.Board {
		for _, piece := range row {
			if piece != nil {
				clone.Place(piece.Clone())
			}
		}
	}
	return clone
}

// Pieces returns the pieces of one color in row, then column order.
func (b *BoardState) Pieces(color Color) []*Piece {
	pieces := []*Piece{}
	for _, row := range b.Board {
		for _, piece := range row {
			if piece != nil && piece.Color == color {
				pieces = append(pieces, piece)
			}
		}
	}
	return pieces
}

// MovesFor returns the possible moves of every piece of one color that has
// at least one.
func (b *BoardState) MovesFor(color Color) map[Position][]Position {
	moves := make(map[Position][]Position)
	for _, piece := range b.Pieces(color) {
		if pm := piece.PossibleMoves(b); len(pm) > 0 {
			moves[piece.Position] = pm
		}
	}
	return moves
}
