package model

var orthogonalVectors = []Vector{
	{DRow: 0, DCol: 1},
	{DRow: 1, DCol: 0},
	{DRow: 0, DCol: -1},
	{DRow: -1, DCol: 0},
}

var diagonalVectors = []Vector{
	{DRow: 1, DCol: 1},
	{DRow: -1, DCol: 1},
	{DRow: 1, DCol: -1},
	{DRow: -1, DCol: -1},
}

var allVectors = append(append([]Vector{}, orthogonalVectors...), diagonalVectors...)

var knightVectors = []Vector{
	{DRow: 2, DCol: 1},
	{DRow: -2, DCol: 1},
	{DRow: 2, DCol: -1},
	{DRow: -2, DCol: -1},
	{DRow: 1, DCol: 2},
	{DRow: 1, DCol: -2},
	{DRow: -1, DCol: 2},
	{DRow: -1, DCol: -2},
}

type movement int

const (
	stepping movement = iota
	sliding
	pawnMovement
)

func (t PieceType) movement() movement {
	switch t {
	case Queen, Rook, Bishop:
		return sliding
	case Pawn:
		return pawnMovement
	}
	return stepping
}
