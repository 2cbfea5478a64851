package model

import (
	"errors"
	"testing"
)

func TestStandardBoardSetup(t *testing.T) {
	b := NewStandardBoard()

	for _, color := range []Color{White, Black} {
		if n := len(b.Pieces(color)); n != 16 {
			t.Fatalf("%s has %d pieces", color, n)
		}
	}
	king, ok := b.PieceAt(pos(0, 4))
	if !ok || king.Type != King || king.Color != White {
		t.Fatalf("e1 = %+v", king)
	}
	queen, ok := b.PieceAt(pos(7, 3))
	if !ok || queen.Type != Queen || queen.Color != Black {
		t.Fatalf("d8 = %+v", queen)
	}
	if _, ok := b.PieceAt(pos(4, 4)); ok {
		t.Fatalf("e5 should be empty")
	}
	if c, ok := b.ColorAt(pos(6, 0)); !ok || c != Black {
		t.Fatalf("a7 color = %q, %v", c, ok)
	}
	if _, ok := b.ColorAt(pos(8, 0)); ok {
		t.Fatalf("off-board square has a color")
	}
}

func TestOpeningMoveCount(t *testing.T) {
	b := NewStandardBoard()

	for _, color := range []Color{White, Black} {
		moves := b.MovesFor(color)
		total := 0
		for _, m := range moves {
			total += len(m)
		}
		if len(moves) != 10 || total != 20 {
			t.Fatalf("%s: %d pieces with %d moves, want 10 with 20", color, len(moves), total)
		}
	}
}

func TestApply(t *testing.T) {
	b := NewStandardBoard()
	rook, _ := b.PieceAt(pos(0, 0))
	target, _ := b.PieceAt(pos(6, 0))

	b.Remove(pos(1, 0))
	captured, err := b.Apply(pos(0, 0), pos(6, 0))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if captured != target || !captured.Captured {
		t.Fatalf("captured = %+v, want flagged a7 pawn", captured)
	}
	if got, _ := b.PieceAt(pos(6, 0)); got != rook {
		t.Fatalf("rook not on a7")
	}
	if _, ok := b.PieceAt(pos(0, 0)); ok {
		t.Fatalf("a1 not vacated")
	}
	if rook.Position != pos(6, 0) || !rook.Moved {
		t.Fatalf("rook state not updated: %+v", rook)
	}

	if _, err := b.Apply(pos(4, 4), pos(5, 4)); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("empty source: got %v", err)
	}
	if _, err := b.Apply(pos(0, 1), pos(-1, 1)); err == nil {
		t.Fatalf("out-of-bounds destination accepted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewStandardBoard()
	clone := b.Clone()

	if _, err := clone.Apply(pos(1, 4), pos(3, 4)); err != nil {
		t.Fatalf("apply on clone: %v", err)
	}

	pawn, ok := b.PieceAt(pos(1, 4))
	if !ok || pawn.Moved || pawn.Position != pos(1, 4) {
		t.Fatalf("original pawn changed: %+v", pawn)
	}
	if _, ok := b.PieceAt(pos(3, 4)); ok {
		t.Fatalf("original board changed")
	}

	// A piece cloned onto the copy answers against the copy.
	moved, _ := clone.PieceAt(pos(3, 4))
	if got := moved.PossibleMoves(clone); len(got) != 1 || got[0] != pos(4, 4) {
		t.Fatalf("clone pawn moves = %v", got)
	}
}
