package types

import "math/bits"

// Squares is a set of board coordinates stored one bit per square, row-major.
type Squares uint32

func squareBit(c Coord) Squares {
	return 1 << uint(c.Row*Cols+c.Col)
}

// Has reports whether c is in the set. Off-board coordinates are never members.
func (s Squares) Has(c Coord) bool {
	if !c.OnBoard() {
		return false
	}
	return s&squareBit(c) != 0
}

// Add returns the set with c included. Off-board coordinates are ignored.
func (s Squares) Add(c Coord) Squares {
	if !c.OnBoard() {
		return s
	}
	return s | squareBit(c)
}

// Empty reports whether the set has no members.
func (s Squares) Empty() bool { return s == 0 }

// Len returns the number of members.
func (s Squares) Len() int { return bits.OnesCount32(uint32(s)) }

// Coords returns the members in row-major order.
func (s Squares) Coords() []Coord {
	out := make([]Coord, 0, s.Len())
	for rest := uint32(s); rest != 0; rest &= rest - 1 {
		idx := bits.TrailingZeros32(rest)
		out = append(out, Coord{Row: idx / Cols, Col: idx % Cols})
	}
	return out
}
