package model

import "fmt"

// Position is a square on the grid. Row is the rank pawns advance along,
// Col is the file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Vector is a direction offset applied to a Position.
type Vector struct {
	DRow int `json:"dRow"`
	DCol int `json:"dCol"`
}

func (p Position) Add(v Vector) Position {
	return Position{Row: p.Row + v.DRow, Col: p.Col + v.DCol}
}

func (v Vector) Scale(n int) Vector {
	return Vector{DRow: v.DRow * n, DCol: v.DCol * n}
}

// String returns the algebraic name of the square, e.g. "e2".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Col+'a', p.Row+1)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", p.Col+'a')
}

// ParseSquare reads an algebraic square name such as "e2".
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return Position{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}
