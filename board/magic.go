package board

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Magic bitboard implementation for sliding piece attacks. The per-square
// multipliers and index widths were found offline and are consumed as given
// from the embedded data file; only the masks, shifts and attack tables are
// rebuilt at Init.

//go:embed magics.toml
var magicsData []byte

type magicFile struct {
	Rook   magicConstants `toml:"rook"`
	Bishop magicConstants `toml:"bishop"`
}

type magicConstants struct {
	Bits   []uint8  `toml:"bits"`
	Magics []uint64 `toml:"magics"`
}

// magic holds the lookup data for one square.
type magic struct {
	mask   Bitboard // relevant occupancy mask (ray squares, edges excluded)
	factor uint64   // magic multiplier
	shift  uint8    // 64 - index bits
	offset uint32   // start of this square's span in the attack table
}

var (
	rookMagics   [64]magic
	bishopMagics [64]magic

	rookTable   [102400]Bitboard
	bishopTable [5248]Bitboard
)

func initMagics() {
	var data magicFile
	if err := toml.Unmarshal(magicsData, &data); err != nil {
		panic(fmt.Sprintf("board: bad magics.toml: %v", err))
	}
	if len(data.Rook.Bits) != 64 || len(data.Rook.Magics) != 64 ||
		len(data.Bishop.Bits) != 64 || len(data.Bishop.Magics) != 64 {
		panic("board: magics.toml must carry 64 entries per table")
	}

	rookSize := initMagicTable(rookMagics[:], rookTable[:], data.Rook, rookMask, rookAttacksSlow)
	bishopSize := initMagicTable(bishopMagics[:], bishopTable[:], data.Bishop, bishopMask, bishopAttacksSlow)
	if rookSize != len(rookTable) || bishopSize != len(bishopTable) {
		panic("board: magic table size mismatch")
	}
}

// initMagicTable fills one piece's magic entries and attack table by
// enumerating every blocker subset of each square's mask and storing the
// ray-walked destinations at the magic index.
func initMagicTable(magics []magic, table []Bitboard, consts magicConstants,
	maskFn func(Square) Bitboard, slowFn func(Square, Bitboard) Bitboard) int {

	offset := uint32(0)
	for sq := A1; sq <= H8; sq++ {
		mask := maskFn(sq)
		bits := int(consts.Bits[sq])
		if mask.PopCount() != bits {
			panic(fmt.Sprintf("board: magic bit count for %s is %d, mask has %d", sq, bits, mask.PopCount()))
		}

		magics[sq] = magic{
			mask:   mask,
			factor: consts.Magics[sq],
			shift:  uint8(64 - bits),
			offset: offset,
		}

		entries := 1 << bits
		for i := 0; i < entries; i++ {
			occ := subsetOfMask(i, bits, mask)
			idx := (uint64(occ) * consts.Magics[sq]) >> (64 - bits)
			table[offset+uint32(idx)] = slowFn(sq, occ)
		}
		offset += uint32(entries)
	}
	return int(offset)
}

// subsetOfMask expands index into the occupancy subset of mask whose members
// correspond to the set bits of index.
func subsetOfMask(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ = occ.Set(sq)
		}
	}
	return occ
}

// rookMask returns the relevant occupancy mask for a rook: the ray squares
// excluding the square itself and the final square of each ray.
func rookMask(sq Square) Bitboard {
	file, rank := sq.File(), sq.Rank()

	var mask Bitboard
	for f := 1; f < 7; f++ {
		if f != file {
			mask = mask.Set(NewSquare(f, rank))
		}
	}
	for r := 1; r < 7; r++ {
		if r != rank {
			mask = mask.Set(NewSquare(file, r))
		}
	}
	return mask
}

// bishopMask returns the relevant occupancy mask for a bishop.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rayAttacks walks from sq in direction (df, dr) until the edge or the
// first blocker, which is included.
func rayAttacks(sq Square, occupied Bitboard, df, dr int) Bitboard {
	var attacks Bitboard
	for f, r := sq.File()+df, sq.Rank()+dr; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+df, r+dr {
		s := NewSquare(f, r)
		attacks = attacks.Set(s)
		if occupied.IsSet(s) {
			break
		}
	}
	return attacks
}

// rookAttacksSlow computes rook attacks by ray walking (initialization only).
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, 1, 0) |
		rayAttacks(sq, occupied, -1, 0) |
		rayAttacks(sq, occupied, 0, 1) |
		rayAttacks(sq, occupied, 0, -1)
}

// bishopAttacksSlow computes bishop attacks by ray walking (initialization only).
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, 1, 1) |
		rayAttacks(sq, occupied, -1, 1) |
		rayAttacks(sq, occupied, 1, -1) |
		rayAttacks(sq, occupied, -1, -1)
}

// RookAttacks returns rook attacks for a square with the given occupancy.
// The result includes the first blocker on each ray regardless of its
// owner; mask with the mover's own pieces afterwards.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.factor) >> m.shift
	return rookTable[m.offset+uint32(idx)]
}

// BishopAttacks returns bishop attacks for a square with the given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.factor) >> m.shift
	return bishopTable[m.offset+uint32(idx)]
}
