package board

import (
	"errors"
	"fmt"
)

// Move encodes one half-turn in a single 64-bit word. The encoding is
// reversible: the position's pre-move flags ride along in the low bits, so
// undoing a move needs no history beyond the move itself.
//
// bits 0-15:  the board's flags word before the move
// bits 16-21: source square
// bits 22-27: destination square
// bit  28:    set if the move is a promotion
// bits 29-31: promotion piece kind
// bit  32:    set if the move is a capture
// bits 33-35: captured piece kind
// bits 36-41: square the captured piece was on (differs from the
//             destination for en passant)
type Move uint64

// MoveEnd is the sentinel returned by an exhausted Generator. It is never a
// legal move.
const MoveEnd Move = 0xFFFFFFFFFFFFFFFF

const (
	movePrevFlags     Move = 0x000000FFFF
	moveSrc           Move = 0x00003F0000
	moveShiftSrc           = 16
	moveDst           Move = 0x0000FC00000
	moveShiftDst           = 22
	moveIsPromote     Move = 0x0010000000
	moveShiftPromote       = 29
	movePromotePiece  Move = 0x00E0000000
	moveIsCapture     Move = 0x0100000000
	moveShiftCapPiece      = 33
	moveCapPiece      Move = 0x0E00000000
	moveShiftCapSq         = 36
	moveCapSquare     Move = 0x3F000000000
)

// encodeMove packs the move components into a Move. The promotion and
// capture fields stay zero unless the corresponding flag bit is set.
func encodeMove(flags uint16, src, dst Square, isPromote bool, promote Piece,
	isCapture bool, capture Piece, captureSq Square) Move {

	m := Move(flags) |
		Move(src)<<moveShiftSrc |
		Move(dst)<<moveShiftDst
	if isPromote {
		m |= moveIsPromote | Move(promote&7)<<moveShiftPromote
	}
	if isCapture {
		m |= moveIsCapture |
			Move(capture&7)<<moveShiftCapPiece |
			Move(captureSq&63)<<moveShiftCapSq
	}
	return m
}

// PrevFlags returns the board flags word embedded when the move was built.
func (m Move) PrevFlags() uint16 {
	return uint16(m & movePrevFlags)
}

// Source returns the square the piece moves from.
func (m Move) Source() Square {
	return Square((m & moveSrc) >> moveShiftSrc)
}

// Destination returns the square the piece moves to.
func (m Move) Destination() Square {
	return Square((m & moveDst) >> moveShiftDst)
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m&moveIsPromote != 0
}

// PromotionPiece returns the piece kind a pawn promotes to, or NoPiece if
// the move is not a promotion.
func (m Move) PromotionPiece() Piece {
	if !m.IsPromotion() {
		return NoPiece
	}
	return Piece((m & movePromotePiece) >> moveShiftPromote)
}

// IsCapture returns true if the move captures a piece.
func (m Move) IsCapture() bool {
	return m&moveIsCapture != 0
}

// CapturePiece returns the kind of the captured piece, or NoPiece if the
// move is not a capture.
func (m Move) CapturePiece() Piece {
	if !m.IsCapture() {
		return NoPiece
	}
	return Piece((m & moveCapPiece) >> moveShiftCapPiece)
}

// CaptureSquare returns the square of the captured piece, or NoSquare if
// the move is not a capture. It equals the destination except for en
// passant captures.
func (m Move) CaptureSquare() Square {
	if !m.IsCapture() {
		return NoSquare
	}
	return Square((m & moveCapSquare) >> moveShiftCapSq)
}

// String returns the move in pure coordinate notation (e.g. "e2e4",
// "a7a8q"). Captures and castles have no special notation; a castle is the
// king's two-square move.
func (m Move) String() string {
	if m == MoveEnd {
		return "0000"
	}
	s := m.Source().String() + m.Destination().String()
	if m.IsPromotion() {
		s += string(promoteChar(m.PromotionPiece()))
	}
	return s
}

func promoteChar(p Piece) byte {
	switch p {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return '?'
}

// ErrBadMove is wrapped by every error ParseMove returns.
var ErrBadMove = errors.New("bad move string")

// epPawnSquare returns the square of the pawn a capture onto the en passant
// target removes: one rank behind the target from the mover's point of view.
func epPawnSquare(target Square) Square {
	if target.Rank() == 5 {
		return target - 8
	}
	return target + 8
}

// NewMove builds a move of the piece on src to dst against the given
// position, resolving capture information (including en passant) from the
// board. The move is not made on the position. promote must be NoPiece
// unless the move is a pawn promotion.
func NewMove(pos *Position, src, dst Square, promote Piece) Move {
	isCapture := false
	capture := NoPiece
	captureSq := NoSquare

	if victim := pos.PieceOn(dst); victim != NoPiece {
		isCapture = true
		capture = victim
		captureSq = dst
	} else if ep := pos.EnPassantTarget(); ep == dst && pos.PieceOn(src) == Pawn {
		isCapture = true
		capture = Pawn
		captureSq = epPawnSquare(ep)
	}

	return encodeMove(pos.Flags, src, dst, promote != NoPiece, promote, isCapture, capture, captureSq)
}

// ParseMove parses a move in pure coordinate notation, <src><dst> with an
// optional promotion letter from "nbrq", against the given position. The
// position is only consulted, never modified.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveEnd, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	src, err := ParseSquare(s[0:2])
	if err != nil {
		return MoveEnd, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	dst, err := ParseSquare(s[2:4])
	if err != nil {
		return MoveEnd, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	promote := NoPiece
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promote = Knight
		case 'b':
			promote = Bishop
		case 'r':
			promote = Rook
		case 'q':
			promote = Queen
		default:
			return MoveEnd, fmt.Errorf("%w: promotion piece %q", ErrBadMove, s[4])
		}
	}

	return NewMove(pos, src, dst, promote), nil
}
