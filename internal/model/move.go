package model

// WSMove is a move request as sent by a client.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

// Move pairs a white ply with the black reply. Either side may be missing:
// the last move of a game, or the first when Black moves first.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func plyNotation(piece *Piece, from, to Position, capture bool) string {
	prefix := piece.Type.Notation()
	fileSpecifier := ""
	captureMark := ""
	if capture {
		captureMark = "x"
		if piece.Type == Pawn {
			fileSpecifier = from.fileNotation()
		}
	}
	return prefix + fileSpecifier + captureMark + to.String()
}
