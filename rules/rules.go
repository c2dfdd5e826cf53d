// Package rules decides which moves are legal and applies them.
//
// Every function takes the board by value and returns new values; nothing in
// this package keeps state between calls. Whose turn it is never enters into
// these decisions: ownership is only used to tell friend from enemy.
package rules

import (
	"fmt"

	"samurai-tactics/types"
)

var directions = map[types.Kind][]types.Coord{
	types.Samurai: {{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}},
	types.Ronin:   {{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}},
	types.Daimyo: {
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: -1},
		{Row: 0, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	},
	types.Ninja: {
		{Row: -2, Col: -2}, {Row: -2, Col: 0}, {Row: -2, Col: 2}, {Row: 0, Col: -2},
		{Row: 0, Col: 2}, {Row: 2, Col: -2}, {Row: 2, Col: 0}, {Row: 2, Col: 2},
	},
}

// Directions returns the movement vectors for kind in table order. For
// sliding kinds these are unit steps; for the Ninja they are jump offsets.
func Directions(kind types.Kind) []types.Coord {
	d := directions[kind]
	out := make([]types.Coord, len(d))
	copy(out, d)
	return out
}

// Slides reports whether kind keeps walking past the first empty square.
func Slides(kind types.Kind) bool {
	return kind == types.Samurai || kind == types.Ronin
}

// LegalDestinations returns every square the piece at from may move to.
// It panics if from is off the board or empty.
func LegalDestinations(b types.Board, from types.Coord) types.Squares {
	if !from.OnBoard() {
		panic(fmt.Sprintf("rules: origin %v is off the board", from))
	}
	mover := b.At(from)
	if mover.IsEmpty() {
		panic(fmt.Sprintf("rules: no piece at %v", from))
	}

	var dests types.Squares
	for _, d := range directions[mover.Kind] {
		to := from.Add(d)
		for to.OnBoard() {
			target := b.At(to)
			if target.Owner == mover.Owner {
				break
			}
			if canLand(mover, target) {
				dests = dests.Add(to)
			}
			if !target.IsEmpty() || !Slides(mover.Kind) {
				break
			}
			to = to.Add(d)
		}
	}
	return dests
}

// canLand reports whether mover may finish on a square holding target.
// Target is either empty or an enemy piece. Ninjas threaten everything
// except the enemy Daimyo.
func canLand(mover, target types.Piece) bool {
	if target.IsEmpty() {
		return true
	}
	return !(mover.Kind == types.Ninja && target.Kind == types.Daimyo)
}

// MoveResult is the outcome of ApplyMove.
type MoveResult struct {
	Board    types.Board
	Moved    types.Piece
	Captured types.Piece  // empty when the destination was empty
	Winner   types.Player // NoPlayer unless the enemy Daimyo was taken
}

// Capture reports whether the move took a piece.
func (r MoveResult) Capture() bool {
	return !r.Captured.IsEmpty()
}

// ApplyMove moves the piece at from to to, capturing whatever stood there.
// The given board is left untouched. Calling it with a destination outside
// LegalDestinations is a caller bug and panics.
func ApplyMove(b types.Board, from, to types.Coord) MoveResult {
	if !LegalDestinations(b, from).Has(to) {
		panic(fmt.Sprintf("rules: %v-%v is not a legal move for %v", from, to, b.At(from)))
	}

	moved := b.At(from)
	captured := b.At(to)
	b.Set(to, moved)
	b.Set(from, types.Piece{})

	result := MoveResult{Board: b, Moved: moved, Captured: captured}
	if captured.Kind == types.Daimyo && captured.Owner == moved.Owner.Opponent() {
		result.Winner = moved.Owner
	}
	return result
}

// HasDaimyo reports whether player's Daimyo is still on the board.
func HasDaimyo(b types.Board, player types.Player) bool {
	for row := range b {
		for _, p := range b[row] {
			if p.Kind == types.Daimyo && p.Owner == player {
				return true
			}
		}
	}
	return false
}

// Movable returns the squares holding pieces of player that have at least
// one legal destination.
func Movable(b types.Board, player types.Player) types.Squares {
	var out types.Squares
	for row := 0; row < types.Rows; row++ {
		for col := 0; col < types.Cols; col++ {
			c := types.Coord{Row: row, Col: col}
			if p := b.At(c); p.Owner == player && !LegalDestinations(b, c).Empty() {
				out = out.Add(c)
			}
		}
	}
	return out
}
