// Package engine defines the interface between a running game and its
// rendering layer.
package engine

import "samurai-tactics/types"

// GameEngine is what the UI drives. Select is the only way play advances.
type GameEngine interface {
	// RenderState returns a snapshot sufficient to draw the board.
	RenderState() RenderState

	// Select handles a click or keypress on a square. Invalid input is
	// ignored rather than reported.
	Select(row, col int)

	// Reset restores the starting layout with Red to move.
	Reset()

	// History returns the moves played since the last reset.
	History() []Move

	// OnMove registers a callback run after each applied move.
	OnMove(func(m Move, state RenderState))

	// OnGameEnd registers a callback run once when a Daimyo falls.
	OnGameEnd(func(winner types.Player))
}

// RenderState is a read-only snapshot of a session.
type RenderState struct {
	Board         types.Board
	CurrentPlayer types.Player
	Selected      types.Coord
	HasSelection  bool
	Legal         types.Squares
	Winner        types.Player // NoPlayer while the game is running
	MoveNumber    int
}

// Finished returns true if the game is over.
func (s RenderState) Finished() bool {
	return s.Winner != types.NoPlayer
}

// Move records one applied move.
type Move struct {
	From     types.Coord
	To       types.Coord
	Piece    types.Piece
	Captured types.Piece
}

func (m Move) String() string {
	sep := "-"
	if !m.Captured.IsEmpty() {
		sep = "x"
	}
	return m.From.Notation() + sep + m.To.Notation()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	FocusMode bool // Start with the side panel hidden
	UseEmoji  bool // Draw pieces with emoji symbols instead of letters
}
