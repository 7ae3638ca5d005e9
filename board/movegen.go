package board

// Generator phases. Regular piece moves stream first, then the two castle
// candidates, then the generator is done and returns MoveEnd forever.
const (
	phaseNormal = iota
	phaseCastleKing
	phaseCastleQueen
	phaseDone
)

// promoteOrder is the emission order of the four promotion choices.
var promoteOrder = [4]Piece{Queen, Rook, Bishop, Knight}

// Generator streams the legal moves of a position one at a time. It holds
// plain value state (occupancy caches and cursors over piece kind and
// square), so it is cheap to create per node.
//
// The generator mutates its position while filtering for legality, and
// Apply/NextApply mutate it on purpose; nothing else may touch the position
// between two generator steps, and the generator must not outlive it.
type Generator struct {
	pos *Position

	// Occupancy caches. The pawn occupancy additionally has the en passant
	// target bit set, so pawn captures pick the target up as if a pawn
	// stood on it.
	sliderOcc Bitboard
	pawnOcc   Bitboard

	// finalMask is ANDed into every destination set: all squares not
	// occupied by the mover.
	finalMask Bitboard

	phase int
	kind  Piece
	sq    int      // current source square; -1 before the first scan
	moves Bitboard // remaining destinations for (kind, sq)

	// Pending promotion fan-out for the destination just peeled.
	pending  [4]Move
	pendingN int
	pendingI int

	done    bool
	hitMove bool
}

// NewGenerator creates a move generator for the position. Init must have
// been called first.
func NewGenerator(pos *Position) Generator {
	if !initDone {
		panic("board: Init must be called before move generation")
	}
	us := pos.SideToMove()
	return Generator{
		pos:       pos,
		sliderOcc: pos.AllOccupancy(),
		pawnOcc:   pos.pawnOccupancy(),
		finalMask: ^pos.Players[us],
		sq:        -1,
	}
}

// Next returns the next legal move, or MoveEnd when the generator is
// exhausted. The position is unchanged when Next returns.
func (g *Generator) Next() Move {
	return g.next(true)
}

// NextApply returns the next legal move with the position left in the
// post-move state. The caller must undo the move before advancing the
// generator again. Returns MoveEnd (without touching the position) when
// exhausted.
func (g *Generator) NextApply() Move {
	return g.next(false)
}

// next yields pseudo-legal candidates and filters them by playing each one
// and testing whether the mover's king is attacked.
func (g *Generator) next(undo bool) Move {
	us := g.pos.SideToMove()
	for {
		m := g.pseudoNext()
		if m == MoveEnd {
			g.done = true
			return MoveEnd
		}

		g.pos.Apply(m)
		if g.pos.InCheck(us) {
			g.pos.Undo(m)
			continue
		}
		if undo {
			g.pos.Undo(m)
		}
		g.hitMove = true
		return m
	}
}

// pseudoNext advances the state machine to the next pseudo-legal move.
func (g *Generator) pseudoNext() Move {
	if g.pendingI < g.pendingN {
		m := g.pending[g.pendingI]
		g.pendingI++
		return m
	}

	us := g.pos.SideToMove()
	for g.phase == phaseNormal {
		if g.moves != 0 {
			dst := g.moves.PopLSB()
			return g.buildMove(us, dst)
		}

		// Advance to the next square holding one of the mover's pieces of
		// the current kind.
		own := g.pos.Players[us]
		for {
			g.sq++
			if g.sq >= 64 {
				g.sq = 0
				g.kind++
			}
			if g.kind > Queen {
				g.phase = phaseCastleKing
				break
			}
			if (g.pos.Pieces[g.kind] & own).IsSet(Square(g.sq)) {
				g.moves = movesMask(g.kind, us, Square(g.sq), g.sliderOcc, g.pawnOcc) & g.finalMask
				break
			}
		}
	}

	if g.phase == phaseCastleKing {
		g.phase = phaseCastleQueen
		if m, ok := g.castleMove(us, KingSide); ok {
			return m
		}
	}
	if g.phase == phaseCastleQueen {
		g.phase = phaseDone
		if m, ok := g.castleMove(us, QueenSide); ok {
			return m
		}
	}
	return MoveEnd
}

// buildMove encodes the move of the current cursor piece to dst, resolving
// capture information and fanning a promoting pawn out into all four
// choices.
func (g *Generator) buildMove(us Color, dst Square) Move {
	pos := g.pos
	them := us.Other()

	isCapture := false
	capture := NoPiece
	captureSq := Square(0)
	if pos.Players[them].IsSet(dst) {
		isCapture = true
		capture = pos.PieceOn(dst)
		captureSq = dst
	} else if g.kind == Pawn && dst == pos.EnPassantTarget() {
		isCapture = true
		capture = Pawn
		captureSq = epPawnSquare(dst)
	}

	src := Square(g.sq)
	if g.kind == Pawn && (dst.Rank() == 0 || dst.Rank() == 7) {
		for i, promote := range promoteOrder {
			g.pending[i] = encodeMove(pos.Flags, src, dst, true, promote, isCapture, capture, captureSq)
		}
		g.pendingN = len(promoteOrder)
		g.pendingI = 1
		return g.pending[0]
	}

	return encodeMove(pos.Flags, src, dst, false, 0, isCapture, capture, captureSq)
}

// castleMove returns the castle move for the given side if it is currently
// available: the right is intact, the squares between king and rook are
// empty, and neither the king's square, the square it crosses nor its
// destination is attacked.
func (g *Generator) castleMove(us Color, side Side) (Move, bool) {
	pos := g.pos
	if !pos.CastlingRights(us, side) {
		return MoveEnd, false
	}

	rank := 0
	if us == Black {
		rank = 7
	}
	kingFrom := NewSquare(4, rank)

	var between Bitboard
	var kingPath []Square
	var kingTo Square
	if side == KingSide {
		kingTo = NewSquare(6, rank)
		between = SquareBB(NewSquare(5, rank)) | SquareBB(NewSquare(6, rank))
		kingPath = []Square{kingFrom, NewSquare(5, rank), kingTo}
	} else {
		kingTo = NewSquare(2, rank)
		between = SquareBB(NewSquare(1, rank)) | SquareBB(NewSquare(2, rank)) | SquareBB(NewSquare(3, rank))
		kingPath = []Square{kingFrom, NewSquare(3, rank), kingTo}
	}

	if pos.AllOccupancy()&between != 0 {
		return MoveEnd, false
	}
	them := us.Other()
	for _, sq := range kingPath {
		if pos.Attackers(sq, them) != 0 {
			return MoveEnd, false
		}
	}

	return encodeMove(pos.Flags, kingFrom, kingTo, false, 0, false, 0, 0), true
}

// IsCheckmate reports whether the position's side to move is checkmated.
// Valid only once the generator has been drained.
func (g *Generator) IsCheckmate() bool {
	if !g.done {
		panic("board: Generator.IsCheckmate before the generator is drained")
	}
	return !g.hitMove && g.pos.InCheck(g.pos.SideToMove())
}

// IsStalemate reports whether the position's side to move is stalemated.
// Valid only once the generator has been drained.
func (g *Generator) IsStalemate() bool {
	if !g.done {
		panic("board: Generator.IsStalemate before the generator is drained")
	}
	return !g.hitMove && !g.pos.InCheck(g.pos.SideToMove())
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	gen := NewGenerator(p)
	return gen.Next() != MoveEnd
}

// IsCheckmate reports whether the side to move is checkmated. This runs a
// fresh generator; inside a search loop prefer Generator.IsCheckmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove()) && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove()) && !p.HasLegalMoves()
}
