package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var ErrInvalidFEN = errors.New("invalid fen")

// BoardFromFEN builds a board from a FEN string and returns the side to
// move. Pawns away from their starting row are marked as moved.
func BoardFromFEN(fen string) (*BoardState, Color, error) {
	normalized, err := normalizeFEN(fen)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	parsed := dragontoothmg.ParseFen(normalized)

	board := NewBoard()
	placeBitboards(board, &parsed.White, White)
	placeBitboards(board, &parsed.Black, Black)

	toMove := Black
	if parsed.Wtomove {
		toMove = White
	}
	return board, toMove, nil
}

func placeBitboards(board *BoardState, bb *dragontoothmg.Bitboards, color Color) {
	sets := []struct {
		bits uint64
		t    PieceType
	}{
		{bb.Pawns, Pawn},
		{bb.Knights, Knight},
		{bb.Bishops, Bishop},
		{bb.Rooks, Rook},
		{bb.Queens, Queen},
		{bb.Kings, King},
	}
	home := 1
	if color == Black {
		home = BoardSize - 2
	}
	for _, set := range sets {
		for sq := 0; sq < BoardSize*BoardSize; sq++ {
			if set.bits&(uint64(1)<<uint(sq)) == 0 {
				continue
			}
			piece := NewPiece(set.t, color, Position{Row: sq / BoardSize, Col: sq % BoardSize})
			if set.t == Pawn && piece.Position.Row != home {
				piece.Moved = true
			}
			board.Place(piece)
		}
	}
}

// normalizeFEN checks the fields move generation depends on and fills in
// omitted trailing fields. The parser does not report malformed input itself.
func normalizeFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 2:
		fields = append(fields, "-", "-", "0", "1")
	case 4:
		fields = append(fields, "0", "1")
	case 6:
	default:
		return "", fmt.Errorf("fen %q: expected 2, 4 or 6 fields, got %d", fen, len(fields))
	}
	if fields[1] != "w" && fields[1] != "b" {
		return "", fmt.Errorf("fen %q: invalid side to move %q", fen, fields[1])
	}
	if fields[3] != "-" {
		if _, err := ParseSquare(fields[3]); err != nil {
			return "", fmt.Errorf("fen %q: invalid en passant field: %w", fen, err)
		}
	}
	for _, counter := range fields[4:] {
		if _, err := strconv.Atoi(counter); err != nil {
			return "", fmt.Errorf("fen %q: invalid move counter %q", fen, counter)
		}
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != BoardSize {
		return "", fmt.Errorf("fen %q: expected %d ranks, got %d", fen, BoardSize, len(ranks))
	}
	for _, rank := range ranks {
		width := 0
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				width += int(r - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", r):
				width++
			default:
				return "", fmt.Errorf("fen %q: invalid character %q", fen, r)
			}
		}
		if width != BoardSize {
			return "", fmt.Errorf("fen %q: rank %q has width %d", fen, rank, width)
		}
	}
	return strings.Join(fields, " "), nil
}
