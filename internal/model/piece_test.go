package model

import "testing"

func TestVectorTables(t *testing.T) {
	tests := []struct {
		typ  PieceType
		want int
	}{
		{King, 8},
		{Queen, 8},
		{Rook, 4},
		{Bishop, 4},
		{Knight, 8},
		{Pawn, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			vectors := NewPiece(tt.typ, White, pos(0, 0)).Vectors()
			if len(vectors) != tt.want {
				t.Fatalf("got %d vectors, want %d", len(vectors), tt.want)
			}
			seen := make(map[Vector]bool)
			for _, v := range vectors {
				if seen[v] {
					t.Fatalf("duplicate vector %v", v)
				}
				seen[v] = true
			}
		})
	}
}

func TestKnightVectorsAreLShaped(t *testing.T) {
	for _, v := range NewPiece(Knight, Black, pos(0, 0)).Vectors() {
		dr, dc := abs(v.DRow), abs(v.DCol)
		if !(dr == 1 && dc == 2) && !(dr == 2 && dc == 1) {
			t.Fatalf("vector %v is not an L", v)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestPawnVectorsMirrorByColor(t *testing.T) {
	white := NewPiece(Pawn, White, pos(3, 3))
	black := NewPiece(Pawn, Black, pos(3, 3))

	if white.Vectors()[0] != (Vector{DRow: 1}) || black.Vectors()[0] != (Vector{DRow: -1}) {
		t.Fatalf("forward vectors: white %v black %v", white.Vectors(), black.Vectors())
	}
	if white.DoubleVector() != (Vector{DRow: 2}) || black.DoubleVector() != (Vector{DRow: -2}) {
		t.Fatalf("double vectors: white %v black %v", white.DoubleVector(), black.DoubleVector())
	}
	for i, v := range white.CaptureVectors() {
		b := black.CaptureVectors()[i]
		if v.DRow != -b.DRow || v.DCol != b.DCol || abs(v.DCol) != 1 {
			t.Fatalf("capture vector %d: white %v black %v", i, v, b)
		}
	}
	if NewPiece(Rook, White, pos(0, 0)).CaptureVectors() != nil {
		t.Fatalf("only pawns have capture vectors")
	}
}

func TestUpdatePositionAndClone(t *testing.T) {
	piece := NewPiece(Bishop, Black, pos(7, 2))
	if piece.Moved || piece.Captured {
		t.Fatalf("new piece should be unmoved and uncaptured: %+v", piece)
	}
	if piece.Opponent() != White {
		t.Fatalf("opponent of black = %s", piece.Opponent())
	}

	clone := piece.Clone()
	piece.UpdatePosition(pos(5, 4))
	if piece.Position != pos(5, 4) || !piece.Moved {
		t.Fatalf("UpdatePosition did not commit: %+v", piece)
	}
	if clone.Position != pos(7, 2) || clone.Moved {
		t.Fatalf("clone followed the original: %+v", clone)
	}
	if clone.Type != Bishop || clone.Color != Black {
		t.Fatalf("clone lost identity: %+v", clone)
	}
}

func TestNotation(t *testing.T) {
	if got := pos(0, 0).String(); got != "a1" {
		t.Errorf("a1: got %q", got)
	}
	if got := pos(7, 7).String(); got != "h8" {
		t.Errorf("h8: got %q", got)
	}
	p, err := ParseSquare("e2")
	if err != nil || p != pos(1, 4) {
		t.Errorf("ParseSquare(e2) = %v, %v", p, err)
	}
	for _, bad := range []string{"", "e", "i1", "a9", "e22"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}

	pawn := NewPiece(Pawn, White, pos(3, 4))
	if got := plyNotation(pawn, pos(3, 4), pos(4, 3), true); got != "exd5" {
		t.Errorf("pawn capture: got %q", got)
	}
	knight := NewPiece(Knight, Black, pos(7, 6))
	if got := plyNotation(knight, pos(7, 6), pos(5, 5), false); got != "Nf6" {
		t.Errorf("knight move: got %q", got)
	}
}
