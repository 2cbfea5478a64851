package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation is the piece letter used in move notation. Pawns have none.
func (t PieceType) Notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a single chessman. Color and Type never change after creation;
// Position and Moved change only through UpdatePosition.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	Captured bool      `json:"captured"`
	Moved    bool      `json:"hasMoved"`
}

func NewPiece(t PieceType, color Color, pos Position) *Piece {
	return &Piece{Type: t, Color: color, Position: pos}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, p.Position)
}

func (p *Piece) Opponent() Color {
	return p.Color.Opponent()
}

// UpdatePosition commits a move. It must only be called once the move has
// been applied to the board.
func (p *Piece) UpdatePosition(pos Position) {
	p.Position = pos
	p.Moved = true
}

func (p *Piece) Step(v Vector) Position {
	return p.Position.Add(v)
}

// Clone returns an independent copy of the piece, suitable for placing on a
// copied board.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

// Vectors returns the normal movement directions of the piece.
func (p *Piece) Vectors() []Vector {
	switch p.Type {
	case King, Queen:
		return allVectors
	case Rook:
		return orthogonalVectors
	case Bishop:
		return diagonalVectors
	case Knight:
		return knightVectors
	case Pawn:
		return []Vector{{DRow: p.forward(), DCol: 0}}
	}
	return nil
}

// CaptureVectors returns the two diagonal pawn capture offsets. Other pieces
// capture along their normal vectors and return nil.
func (p *Piece) CaptureVectors() []Vector {
	if p.Type != Pawn {
		return nil
	}
	return []Vector{{DRow: p.forward(), DCol: -1}, {DRow: p.forward(), DCol: 1}}
}

// DoubleVector returns the unmoved pawn's two-square advance.
func (p *Piece) DoubleVector() Vector {
	return Vector{DRow: 2 * p.forward(), DCol: 0}
}

func (p *Piece) forward() int {
	if p.Color == White {
		return 1
	}
	return -1
}
