package board

import "fmt"

// castleRookSquares returns the rook's from and to squares for a castle
// identified by the king's destination file.
func castleRookSquares(kingFrom, kingTo Square) (Square, Square) {
	rank := kingFrom.Rank()
	if kingTo.File() == 6 {
		return NewSquare(7, rank), NewSquare(5, rank) // king side: h -> f
	}
	return NewSquare(0, rank), NewSquare(3, rank) // queen side: a -> d
}

// isCastleMove reports whether moving kind from src to dst is a castle. The
// move word carries no castle bit; a king moves two files only when castling.
func isCastleMove(kind Piece, src, dst Square) bool {
	if kind != King {
		return false
	}
	df := src.File() - dst.File()
	return df == 2 || df == -2
}

// Apply makes the move on the position. The move must have been built
// against this exact position: its embedded pre-move flags must equal the
// current flags word.
func (p *Position) Apply(m Move) {
	if m.PrevFlags() != p.Flags {
		panic(fmt.Sprintf("board: Apply of stale move %s: flags %04x, position has %04x",
			m, m.PrevFlags(), p.Flags))
	}

	src := m.Source()
	dst := m.Destination()
	kind := p.PieceOn(src)
	if kind == NoPiece {
		panic(fmt.Sprintf("board: Apply of move %s with empty source", m))
	}
	us := p.SideToMove()
	them := us.Other()

	// Remove the captured piece. Its square differs from the destination
	// only for en passant.
	if m.IsCapture() {
		capSq := m.CaptureSquare()
		bb := SquareBB(capSq)
		p.Pieces[m.CapturePiece()] &^= bb
		p.Players[them] &^= bb
	}

	// Move the piece. A promotion materializes the promoted kind on the
	// destination instead of the pawn.
	p.Pieces[kind] = p.Pieces[kind].Clear(src)
	p.Players[us] = p.Players[us].Clear(src)
	if m.IsPromotion() {
		p.Pieces[m.PromotionPiece()] = p.Pieces[m.PromotionPiece()].Set(dst)
	} else {
		p.Pieces[kind] = p.Pieces[kind].Set(dst)
	}
	p.Players[us] = p.Players[us].Set(dst)

	if isCastleMove(kind, src, dst) {
		rookFrom, rookTo := castleRookSquares(src, dst)
		rook := SquareBB(rookFrom) | SquareBB(rookTo)
		p.Pieces[Rook] ^= rook
		p.Players[us] ^= rook
	}

	flags := p.Flags &^ (flagsEPPresent | flagsEPSquare)
	flags ^= flagsTurn

	// A double pawn push exposes the skipped square to en passant capture.
	if kind == Pawn && (int(dst)-int(src) == 16 || int(src)-int(dst) == 16) {
		target := (src + dst) / 2
		flags |= flagsEPPresent | uint16(target)
	}

	// Castling rights go away when the king moves, when a rook leaves its
	// corner, or when anything lands on a corner (capturing the rook that
	// was there).
	if kind == King {
		if us == White {
			flags &^= flagsWCastleK | flagsWCastleQ
		} else {
			flags &^= flagsBCastleK | flagsBCastleQ
		}
	}
	if src == A1 || dst == A1 {
		flags &^= flagsWCastleQ
	}
	if src == H1 || dst == H1 {
		flags &^= flagsWCastleK
	}
	if src == A8 || dst == A8 {
		flags &^= flagsBCastleQ
	}
	if src == H8 || dst == H8 {
		flags &^= flagsBCastleK
	}

	p.Flags = flags
}

// Undo retracts the move, which must be the most recently applied move on
// this position. The pre-move flags embedded in the move restore side to
// move, en passant and castling rights; the piece placement is rebuilt from
// the move's source, destination and capture fields.
func (p *Position) Undo(m Move) {
	src := m.Source()
	dst := m.Destination()

	p.Flags = m.PrevFlags()
	us := p.SideToMove()
	them := us.Other()

	kind := p.PieceOn(dst)
	if kind == NoPiece {
		panic(fmt.Sprintf("board: Undo of move %s with empty destination", m))
	}

	// Take the piece off the destination and put it back on the source; a
	// promotion turns back into a pawn.
	p.Pieces[kind] = p.Pieces[kind].Clear(dst)
	p.Players[us] = p.Players[us].Clear(dst)
	if m.IsPromotion() {
		kind = Pawn
	}
	p.Pieces[kind] = p.Pieces[kind].Set(src)
	p.Players[us] = p.Players[us].Set(src)

	if isCastleMove(kind, src, dst) {
		rookFrom, rookTo := castleRookSquares(src, dst)
		rook := SquareBB(rookFrom) | SquareBB(rookTo)
		p.Pieces[Rook] ^= rook
		p.Players[us] ^= rook
	}

	if m.IsCapture() {
		bb := SquareBB(m.CaptureSquare())
		p.Pieces[m.CapturePiece()] |= bb
		p.Players[them] |= bb
	}
}
