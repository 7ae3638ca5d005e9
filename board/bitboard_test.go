package board

import "testing"

func TestSquareLayout(t *testing.T) {
	if A1 != 0 || H1 != 7 || A2 != 8 || A8 != 56 || H8 != 63 {
		t.Fatal("square constants do not follow the a1=0 little-endian layout")
	}
	if NewSquare(4, 3) != E4 {
		t.Errorf("NewSquare(4, 3) = %v, want e4", NewSquare(4, 3))
	}
	if E4.File() != 4 || E4.Rank() != 3 {
		t.Errorf("e4 decomposes to (%d, %d), want (4, 3)", E4.File(), E4.Rank())
	}
	if E4.String() != "e4" {
		t.Errorf("E4.String() = %q, want e4", E4.String())
	}

	sq, err := ParseSquare("e4")
	if err != nil || sq != E4 {
		t.Errorf("ParseSquare(e4) = %v, %v", sq, err)
	}
	for _, bad := range []string{"", "e", "e44", "i4", "e9", "4e"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", bad)
		}
	}
}

func TestBitboardBasics(t *testing.T) {
	var b Bitboard
	b = b.Set(E4).Set(A1).Set(H8)

	if !b.IsSet(E4) || !b.IsSet(A1) || !b.IsSet(H8) {
		t.Fatal("Set/IsSet mismatch")
	}
	if b.PopCount() != 3 {
		t.Errorf("PopCount = %d, want 3", b.PopCount())
	}
	if b.LSB() != A1 {
		t.Errorf("LSB = %v, want a1", b.LSB())
	}

	b = b.Clear(A1)
	if b.IsSet(A1) || b.PopCount() != 2 {
		t.Error("Clear did not clear a1")
	}
	b = b.Toggle(A1).Toggle(E4)
	if !b.IsSet(A1) || b.IsSet(E4) {
		t.Error("Toggle mismatch")
	}

	if Empty.LSB() != NoSquare {
		t.Errorf("LSB of empty bitboard = %v, want NoSquare", Empty.LSB())
	}

	rest := SquareBB(C3) | SquareBB(F6)
	if got := rest.PopLSB(); got != C3 {
		t.Errorf("PopLSB = %v, want c3", got)
	}
	if rest != SquareBB(F6) {
		t.Errorf("PopLSB left %v, want only f6", rest)
	}
}

// TestShiftsDoNotWrap checks the file masking on the horizontal and
// diagonal shifts: a bit on the h-file must vanish when shifted east, not
// reappear on the a-file of the next rank.
func TestShiftsDoNotWrap(t *testing.T) {
	tests := []struct {
		name  string
		shift func(Bitboard) Bitboard
		from  Square
		want  Bitboard
	}{
		{"north", Bitboard.North, E4, SquareBB(E5)},
		{"south", Bitboard.South, E4, SquareBB(E3)},
		{"east", Bitboard.East, E4, SquareBB(F4)},
		{"west", Bitboard.West, E4, SquareBB(D4)},
		{"north east", Bitboard.NorthEast, E4, SquareBB(F5)},
		{"north west", Bitboard.NorthWest, E4, SquareBB(D5)},
		{"south east", Bitboard.SouthEast, E4, SquareBB(F3)},
		{"south west", Bitboard.SouthWest, E4, SquareBB(D3)},

		{"east off h-file", Bitboard.East, H4, Empty},
		{"west off a-file", Bitboard.West, A4, Empty},
		{"north east off h-file", Bitboard.NorthEast, H4, Empty},
		{"north west off a-file", Bitboard.NorthWest, A4, Empty},
		{"south east off h-file", Bitboard.SouthEast, H4, Empty},
		{"south west off a-file", Bitboard.SouthWest, A4, Empty},
		{"north off rank 8", Bitboard.North, E8, Empty},
		{"south off rank 1", Bitboard.South, E1, Empty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.shift(SquareBB(tc.from)); got != tc.want {
				t.Errorf("shift from %v = %v, want %v", tc.from, got, tc.want)
			}
		})
	}
}

func TestKnightAndKingTables(t *testing.T) {
	if got := KnightMoves(A1); got != SquareBB(B3)|SquareBB(C2) {
		t.Errorf("knight moves from a1:\n%v", got)
	}
	if got := KnightMoves(E4).PopCount(); got != 8 {
		t.Errorf("knight on e4 has %d moves, want 8", got)
	}
	if got := KingMoves(A1); got != SquareBB(A2)|SquareBB(B1)|SquareBB(B2) {
		t.Errorf("king moves from a1:\n%v", got)
	}
	if got := KingMoves(E4).PopCount(); got != 8 {
		t.Errorf("king on e4 has %d moves, want 8", got)
	}
}

func TestSliderAttacks(t *testing.T) {
	// Rook on d4, blockers on d6 and f4: the first blocker square is
	// included on each ray.
	occ := SquareBB(D6) | SquareBB(F4)
	want := SquareBB(D5) | SquareBB(D6) |
		SquareBB(D3) | SquareBB(D2) | SquareBB(D1) |
		SquareBB(E4) | SquareBB(F4) |
		SquareBB(C4) | SquareBB(B4) | SquareBB(A4)
	if got := RookAttacks(D4, occ); got != want {
		t.Errorf("rook attacks from d4:\ngot\n%v\nwant\n%v", got, want)
	}

	// Empty board cross-checks against the ray walker used at init.
	for sq := A1; sq <= H8; sq++ {
		if RookAttacks(sq, 0) != rookAttacksSlow(sq, 0) {
			t.Fatalf("rook magic lookup disagrees with ray walk on empty board at %v", sq)
		}
		if BishopAttacks(sq, 0) != bishopAttacksSlow(sq, 0) {
			t.Fatalf("bishop magic lookup disagrees with ray walk on empty board at %v", sq)
		}
	}

	if got, want := BishopAttacks(D4, SquareBB(F6)), bishopAttacksSlow(D4, SquareBB(F6)); got != want {
		t.Errorf("bishop attacks from d4 with blocker f6:\ngot\n%v\nwant\n%v", got, want)
	}
	if got := QueenAttacks(D4, 0); got != RookAttacks(D4, 0)|BishopAttacks(D4, 0) {
		t.Error("queen attacks are not rook|bishop")
	}
}

func TestPawnMoveTable(t *testing.T) {
	tests := []struct {
		name string
		occ  Bitboard
		sq   Square
		c    Color
		want Bitboard
	}{
		{"white start rank open", 0, E2, White, SquareBB(E3) | SquareBB(E4)},
		{"white start rank blocked ahead", SquareBB(E3), E2, White, 0},
		{"white start rank double blocked", SquareBB(E4), E2, White, SquareBB(E3)},
		{"white mid board", 0, E4, White, SquareBB(E5)},
		{"white captures on occupancy", SquareBB(D5) | SquareBB(F5), E4, White, SquareBB(E5) | SquareBB(D5) | SquareBB(F5)},
		{"black start rank open", 0, E7, Black, SquareBB(E6) | SquareBB(E5)},
		{"black captures on occupancy", SquareBB(D6) | SquareBB(F6), E7, Black, SquareBB(E6) | SquareBB(E5) | SquareBB(D6) | SquareBB(F6)},
		{"a-file pawn never wraps", SquareBB(H3), A3, White, SquareBB(A4)},
		{"h-file pawn never wraps", SquareBB(A5), H5, Black, SquareBB(H4)},
		{"black pawn on rank 2", 0, A2, Black, SquareBB(A1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PawnMoves(tc.occ, tc.sq, tc.c); got != tc.want {
				t.Errorf("pawn moves:\ngot\n%v\nwant\n%v", got, tc.want)
			}
		})
	}
}
