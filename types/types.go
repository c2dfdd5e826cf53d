// Package types contains shared data structures for samurai-tactics.
package types

import "encoding/json"

const (
	// Rows is the board height. Row 0 is Red's back rank.
	Rows = 6
	// Cols is the board width.
	Cols = 5
)

// Player identifies a side. The zero value means no player.
type Player uint8

const (
	NoPlayer Player = iota
	Red
	Blue
)

// Opponent returns the other side (Red->Blue, Blue->Red).
func (p Player) Opponent() Player {
	switch p {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	}
	return "None"
}

// Kind is a piece kind. The zero value marks an empty square.
type Kind uint8

const (
	NoKind Kind = iota
	Samurai
	Ronin
	Daimyo
	Ninja
)

// Kinds lists every piece kind in display order.
var Kinds = []Kind{Samurai, Ronin, Daimyo, Ninja}

func (k Kind) String() string {
	switch k {
	case Samurai:
		return "Samurai"
	case Ronin:
		return "Ronin"
	case Daimyo:
		return "Daimyo"
	case Ninja:
		return "Ninja"
	}
	return "None"
}

// Piece is an immutable kind/owner pair. Pieces carry no identity; the
// square they stand on is their identity.
type Piece struct {
	Kind  Kind
	Owner Player
}

// IsEmpty reports whether p is the empty square value.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Owner.String() + " " + p.Kind.String()
}

// Coord is a board position. Row 0 is the top, column 0 the left.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OnBoard reports whether c lies inside the 5x6 grid.
func (c Coord) OnBoard() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Add returns c offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// UnmarshalJSON allows Coord to be unmarshaled from either {"row":r,"col":c}
// or a JSON array [row, col].
func (c *Coord) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err == nil {
		if len(v) != 2 {
			return ErrInvalidSquare
		}
		c.Row, c.Col = v[0], v[1]
		return nil
	}
	type plain Coord
	return json.Unmarshal(data, (*plain)(c))
}

// Board is the 5x6 grid indexed as Board[row][col]. It is a value type, so
// assigning a Board copies every square.
type Board [Rows][Cols]Piece

// At returns the piece at c. c must be on the board.
func (b Board) At(c Coord) Piece {
	return b[c.Row][c.Col]
}

// Set places p at c. c must be on the board.
func (b *Board) Set(c Coord, p Piece) {
	b[c.Row][c.Col] = p
}

// Count returns the number of occupied squares.
func (b Board) Count() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if !b[r][c].IsEmpty() {
				n++
			}
		}
	}
	return n
}

var backRank = [Cols]Kind{Samurai, Ronin, Daimyo, Ronin, Samurai}

// NewBoard returns the starting layout: Red's back rank on row 0 with its
// Ninja line on row 1, Blue mirrored on rows 5 and 4.
func NewBoard() Board {
	var b Board
	for col := 0; col < Cols; col++ {
		b[0][col] = Piece{Kind: backRank[col], Owner: Red}
		b[1][col] = Piece{Kind: Ninja, Owner: Red}
		b[Rows-2][col] = Piece{Kind: Ninja, Owner: Blue}
		b[Rows-1][col] = Piece{Kind: backRank[col], Owner: Blue}
	}
	return b
}
