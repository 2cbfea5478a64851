package model

// Board is what move generation needs to know about the squares around a piece.
type Board interface {
	InBounds(pos Position) bool
	// PieceAt reports the piece on pos; ok is false for an empty square.
	PieceAt(pos Position) (piece *Piece, ok bool)
	ColorAt(pos Position) (color Color, ok bool)
}

// PossibleMoves returns every destination the piece may move to on b.
// Check is not considered. The piece and the board are not modified.
func (p *Piece) PossibleMoves(b Board) []Position {
	moves := []Position{}
	for _, move := range p.MovesInRange(b) {
		if b.InBounds(move) && !p.SelfBlocking(b, move) {
			moves = append(moves, move)
		}
	}
	return moves
}

// MovesInRange returns the raw candidates before the bounds and
// self-capture filter is applied.
func (p *Piece) MovesInRange(b Board) []Position {
	if p.Type.movement() == pawnMovement {
		return p.pawnMoves(b)
	}
	moves := []Position{}
	for _, v := range p.Vectors() {
		moves = append(moves, p.MovesFromVector(b, v)...)
	}
	return moves
}

// MovesFromVector expands one direction into candidate squares. Sliding
// pieces run along the ray up to and including the first occupied square;
// everything else takes a single step.
func (p *Piece) MovesFromVector(b Board, v Vector) []Position {
	if p.Type.movement() != sliding {
		return []Position{p.Step(v)}
	}

	moves := []Position{}
	for i := 1; ; i++ {
		move := p.Step(v.Scale(i))
		if !b.InBounds(move) {
			break
		}
		moves = append(moves, move)
		if _, occupied := b.PieceAt(move); occupied {
			break
		}
	}
	return moves
}

// SelfBlocking reports whether pos holds a piece of the same color.
func (p *Piece) SelfBlocking(b Board, pos Position) bool {
	other, ok := b.PieceAt(pos)
	if !ok {
		return false
	}
	return other.Color == p.Color
}

// IsCapture reports whether pos is on the board and holds an opponent piece.
func (p *Piece) IsCapture(b Board, pos Position) bool {
	if !b.InBounds(pos) {
		return false
	}
	color, ok := b.ColorAt(pos)
	return ok && color == p.Opponent()
}

func (p *Piece) pawnMoves(b Board) []Position {
	moves := []Position{}

	single := p.Step(p.Vectors()[0])
	if !p.IsCapture(b, single) {
		moves = append(moves, single)
	}
	// The double step may not jump over a piece on the single-step square.
	if !p.Moved && b.InBounds(single) {
		if _, blocked := b.PieceAt(single); !blocked {
			double := p.Step(p.DoubleVector())
			if !p.IsCapture(b, double) {
				moves = append(moves, double)
			}
		}
	}

	for _, v := range p.CaptureVectors() {
		target := p.Step(v)
		if p.IsCapture(b, target) {
			moves = append(moves, target)
		}
	}
	return moves
}
