package types

import (
	"errors"
	"fmt"
	"strings"
)

// Square notation:
// - Columns: a-e (left to right)
// - Rows: 1-6, counted from row 0 (Red's back rank)
// - Example: c1 is the Red Daimyo's starting square, c6 the Blue Daimyo's.

// ErrInvalidSquare is wrapped by every notation parse failure.
var ErrInvalidSquare = errors.New("invalid square")

// Notation converts a coordinate to square notation, e.g. (1, 2) -> "c2".
func (c Coord) Notation() string {
	if !c.OnBoard() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(c.Col), c.Row+1)
}

func (c Coord) String() string {
	return c.Notation()
}

// ParseSquare converts square notation to a coordinate. Case is ignored.
func ParseSquare(s string) (Coord, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	if s[1] < '1' || s[1] > '0'+Rows {
		return Coord{}, fmt.Errorf("%w: bad row in %q", ErrInvalidSquare, s)
	}

	c := Coord{Row: int(s[1] - '1'), Col: int(s[0]) - 'a'}
	if !c.OnBoard() {
		return Coord{}, fmt.Errorf("%w: %q out of bounds", ErrInvalidSquare, s)
	}
	return c, nil
}

// ParseMove splits a move token such as "c2-c4" or "c2xc1" into its two
// squares.
func ParseMove(token string) (from, to Coord, err error) {
	parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(token)), func(r rune) bool {
		return r == '-' || r == 'x'
	})
	if len(parts) != 2 {
		return Coord{}, Coord{}, fmt.Errorf("%w: move %q must look like c2-c4", ErrInvalidSquare, token)
	}
	if from, err = ParseSquare(parts[0]); err != nil {
		return Coord{}, Coord{}, err
	}
	if to, err = ParseSquare(parts[1]); err != nil {
		return Coord{}, Coord{}, err
	}
	return from, to, nil
}

// Letter returns a one-letter code for p: upper case for Red, lower case for
// Blue and '.' for an empty square.
func (p Piece) Letter() rune {
	var r rune
	switch p.Kind {
	case Samurai:
		r = 'S'
	case Ronin:
		r = 'R'
	case Daimyo:
		r = 'D'
	case Ninja:
		r = 'N'
	default:
		return '.'
	}
	if p.Owner == Blue {
		r += 'a' - 'A'
	}
	return r
}

// String draws the board as text with file letters and rank numbers.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Cols; col++ {
			sb.WriteRune(b[row][col].Letter())
			if col < Cols-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e\n")
	return sb.String()
}
