package session

// State is the session's position in the select/move cycle.
type State int

const (
	// StateSelecting waits for the player to move to pick one of their pieces.
	StateSelecting State = iota
	// StatePieceSelected holds a chosen piece and its legal destinations.
	StatePieceSelected
	// StateGameOver is terminal until Reset.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StatePieceSelected:
		return "piece_selected"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
