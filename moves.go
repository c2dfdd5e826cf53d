package main

import (
	"fmt"
	"io"

	"samurai-tactics/engine"
	"samurai-tactics/types"
)

// playMoves applies each token to eng as a pair of selections and writes the
// final board to w. It stops at the first token that is not a legal move.
func playMoves(w io.Writer, eng engine.GameEngine, tokens []string) error {
	for i, token := range tokens {
		from, to, err := types.ParseMove(token)
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}

		before := eng.RenderState()
		if before.Finished() {
			return fmt.Errorf("move %d %q: game is already over", i+1, token)
		}
		eng.Select(from.Row, from.Col)
		eng.Select(to.Row, to.Col)
		if eng.RenderState().MoveNumber == before.MoveNumber {
			return fmt.Errorf("move %d %q: illegal for %s", i+1, token, before.CurrentPlayer)
		}
	}

	state := eng.RenderState()
	fmt.Fprint(w, state.Board.String())
	if state.Finished() {
		fmt.Fprintf(w, "%s wins after %d moves\n", state.Winner, state.MoveNumber)
	} else {
		fmt.Fprintf(w, "%s to move\n", state.CurrentPlayer)
	}
	return nil
}
