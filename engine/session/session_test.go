package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"samurai-tactics/engine"
	"samurai-tactics/types"
)

func sq(row, col int) types.Coord { return types.Coord{Row: row, Col: col} }

// play selects from and then to, failing the test if no move was applied.
func play(t *testing.T, s *Session, from, to types.Coord) {
	t.Helper()
	before := len(s.History())
	s.Select(from.Row, from.Col)
	s.Select(to.Row, to.Col)
	if len(s.History()) != before+1 {
		t.Fatalf("move %v-%v was not applied", from, to)
	}
}

func TestNewSession(t *testing.T) {
	s := New(WithID("test"))
	if s.ID() != "test" {
		t.Fatalf("expected id test, got %q", s.ID())
	}
	st := s.RenderState()
	if st.CurrentPlayer != types.Red {
		t.Fatalf("Red should move first, got %v", st.CurrentPlayer)
	}
	if st.HasSelection || !st.Legal.Empty() || st.Finished() || st.MoveNumber != 0 {
		t.Fatalf("unexpected initial state %+v", st)
	}
	if diff := cmp.Diff(types.NewBoard(), st.Board); diff != "" {
		t.Fatalf("initial board mismatch:\n%s", diff)
	}
	if s.State() != StateSelecting {
		t.Fatalf("expected selecting, got %v", s.State())
	}
}

func TestGeneratedIDsDiffer(t *testing.T) {
	if New().ID() == New().ID() {
		t.Fatal("sessions should get distinct IDs")
	}
}

func TestSelectOwnPiece(t *testing.T) {
	s := New()
	s.Select(1, 2)
	st := s.RenderState()
	if s.State() != StatePieceSelected || !st.HasSelection || st.Selected != sq(1, 2) {
		t.Fatalf("expected c2 selected, got state=%v %+v", s.State(), st)
	}
	want := []types.Coord{sq(3, 0), sq(3, 2), sq(3, 4)}
	if diff := cmp.Diff(want, st.Legal.Coords()); diff != "" {
		t.Fatalf("legal squares mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectIgnoresEmptyAndEnemy(t *testing.T) {
	s := New()
	for _, c := range []types.Coord{sq(2, 2), sq(4, 0), sq(5, 2), sq(-1, 0), sq(0, 9)} {
		s.Select(c.Row, c.Col)
		if s.State() != StateSelecting {
			t.Fatalf("selecting %v should be a no-op, state is %v", c, s.State())
		}
	}
}

func TestSelectBlockedPieceStillSelects(t *testing.T) {
	s := New()
	s.Select(0, 2)
	st := s.RenderState()
	if !st.HasSelection || !st.Legal.Empty() {
		t.Fatalf("boxed-in Daimyo should be selectable with no destinations, got %+v", st)
	}
}

func TestToggleDeselect(t *testing.T) {
	s := New()
	s.Select(1, 2)
	s.Select(1, 2)
	st := s.RenderState()
	if s.State() != StateSelecting || st.HasSelection || !st.Legal.Empty() {
		t.Fatalf("second click on the same piece should deselect, got %+v", st)
	}
	if st.CurrentPlayer != types.Red {
		t.Fatal("deselecting must not pass the turn")
	}
}

func TestReselectOtherOwnPiece(t *testing.T) {
	s := New()
	s.Select(1, 2)
	s.Select(1, 0)
	st := s.RenderState()
	if st.Selected != sq(1, 0) {
		t.Fatalf("expected a2 selected, got %v", st.Selected)
	}
	want := []types.Coord{sq(3, 0), sq(3, 2)}
	if diff := cmp.Diff(want, st.Legal.Coords()); diff != "" {
		t.Fatalf("legal squares mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidTargetDeselects(t *testing.T) {
	s := New()
	s.Select(1, 2)
	s.Select(2, 2) // empty but not a jump target
	if s.State() != StateSelecting || s.RenderState().HasSelection {
		t.Fatal("clicking a non-legal square should clear the selection")
	}

	s.Select(1, 2)
	s.Select(4, 2) // enemy piece, not reachable
	if s.State() != StateSelecting {
		t.Fatal("clicking an unreachable enemy should clear the selection")
	}
}

func TestNinjaJumpPassesTurn(t *testing.T) {
	s := New()
	var gotMove engine.Move
	var gotState engine.RenderState
	calls := 0
	s.OnMove(func(m engine.Move, st engine.RenderState) {
		calls++
		gotMove, gotState = m, st
	})

	s.Select(1, 2)
	s.Select(3, 2)

	st := s.RenderState()
	if st.CurrentPlayer != types.Blue {
		t.Fatalf("turn should pass to Blue, got %v", st.CurrentPlayer)
	}
	if !st.Board.At(sq(1, 2)).IsEmpty() || st.Board.At(sq(3, 2)) != (types.Piece{Kind: types.Ninja, Owner: types.Red}) {
		t.Fatalf("Ninja did not land on c4:\n%s", st.Board)
	}
	if st.HasSelection || st.MoveNumber != 1 {
		t.Fatalf("unexpected state after move %+v", st)
	}
	if calls != 1 || gotMove.String() != "c2-c4" || gotState.CurrentPlayer != types.Blue {
		t.Fatalf("OnMove got calls=%d move=%v player=%v", calls, gotMove, gotState.CurrentPlayer)
	}
}

func TestBlueCannotMoveOnRedTurn(t *testing.T) {
	s := New()
	s.Select(4, 2)
	if s.State() != StateSelecting {
		t.Fatal("Blue piece must not be selectable on Red's turn")
	}
	play(t, s, sq(1, 2), sq(3, 2))
	s.Select(1, 0)
	if s.State() != StateSelecting {
		t.Fatal("Red piece must not be selectable on Blue's turn")
	}
}

// roninRaid plays a line where Blue's b6 Ronin clears the b-file, takes the
// c2 Ninja and finishes on the Red Daimyo.
func roninRaid(t *testing.T, s *Session) {
	t.Helper()
	play(t, s, sq(1, 4), sq(3, 4)) // Red e2-e4
	play(t, s, sq(4, 1), sq(2, 3)) // Blue b5-d3
	play(t, s, sq(3, 4), sq(1, 4)) // Red e4-e2
	play(t, s, sq(5, 1), sq(1, 1)) // Blue b6xb2
	play(t, s, sq(1, 4), sq(3, 4)) // Red e2-e4
	play(t, s, sq(1, 1), sq(1, 2)) // Blue b2xc2
	play(t, s, sq(3, 4), sq(1, 4)) // Red e4-e2
	play(t, s, sq(1, 2), sq(0, 2)) // Blue c2xc1
}

func TestDaimyoCaptureEndsGame(t *testing.T) {
	s := New()
	var winners []types.Player
	s.OnGameEnd(func(winner types.Player) {
		winners = append(winners, winner)
		// Callbacks run outside the lock.
		if !s.RenderState().Finished() {
			t.Error("state should be final when OnGameEnd runs")
		}
	})

	roninRaid(t, s)

	st := s.RenderState()
	if st.Winner != types.Blue || s.State() != StateGameOver {
		t.Fatalf("expected Blue to win, got winner=%v state=%v", st.Winner, s.State())
	}
	if diff := cmp.Diff([]types.Player{types.Blue}, winners); diff != "" {
		t.Fatalf("OnGameEnd calls mismatch (-want +got):\n%s", diff)
	}
	if st.Board.At(sq(0, 2)) != (types.Piece{Kind: types.Ronin, Owner: types.Blue}) {
		t.Fatalf("Blue Ronin should stand on c1:\n%s", st.Board)
	}
	history := s.History()
	if len(history) != 8 || history[7].String() != "c2xc1" || history[7].Captured.Kind != types.Daimyo {
		t.Fatalf("unexpected history %v", history)
	}
}

func TestGameOverIgnoresInput(t *testing.T) {
	s := New()
	roninRaid(t, s)
	before := s.RenderState()

	for row := 0; row < types.Rows; row++ {
		for col := 0; col < types.Cols; col++ {
			s.Select(row, col)
			s.Select(0, 2)
		}
	}
	after := s.RenderState()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("finished game changed (-before +after):\n%s", diff)
	}
}

func TestRedWinsFromPosition(t *testing.T) {
	s := New()
	var b types.Board
	b.Set(sq(3, 2), types.Piece{Kind: types.Samurai, Owner: types.Red})
	b.Set(sq(5, 4), types.Piece{Kind: types.Daimyo, Owner: types.Blue})
	b.Set(sq(0, 0), types.Piece{Kind: types.Daimyo, Owner: types.Red})
	s.board = b

	ended := false
	s.OnGameEnd(func(winner types.Player) { ended = winner == types.Red })
	s.Select(3, 2)
	s.Select(5, 4)

	if !ended || s.RenderState().Winner != types.Red {
		t.Fatalf("Red should win by taking the Daimyo, winner=%v", s.RenderState().Winner)
	}
	if s.RenderState().CurrentPlayer != types.Red {
		t.Fatal("turn should not pass after the winning move")
	}
}

func TestNinjaCannotEndGame(t *testing.T) {
	s := New()
	var b types.Board
	b.Set(sq(1, 2), types.Piece{Kind: types.Ninja, Owner: types.Red})
	b.Set(sq(3, 2), types.Piece{Kind: types.Daimyo, Owner: types.Blue})
	b.Set(sq(0, 0), types.Piece{Kind: types.Daimyo, Owner: types.Red})
	s.board = b

	s.Select(1, 2)
	if s.RenderState().Legal.Has(sq(3, 2)) {
		t.Fatal("Ninja should not threaten the Daimyo")
	}
	s.Select(3, 2)
	if s.RenderState().Finished() || len(s.History()) != 0 {
		t.Fatal("clicking the Daimyo with a Ninja must not move")
	}
}

func TestResetFromAnyState(t *testing.T) {
	fresh := New().RenderState()

	s := New()
	s.Select(1, 2)
	s.Reset()
	if diff := cmp.Diff(fresh, s.RenderState()); diff != "" {
		t.Fatalf("reset from selection mismatch:\n%s", diff)
	}

	roninRaid(t, s)
	s.Reset()
	if diff := cmp.Diff(fresh, s.RenderState()); diff != "" {
		t.Fatalf("reset from game over mismatch:\n%s", diff)
	}
	if s.State() != StateSelecting || len(s.History()) != 0 {
		t.Fatalf("expected selecting with empty history, got %v / %d moves", s.State(), len(s.History()))
	}

	// Play continues normally after a reset.
	play(t, s, sq(1, 2), sq(3, 2))
}

func TestHistoryIsCopy(t *testing.T) {
	s := New()
	play(t, s, sq(1, 2), sq(3, 2))
	h := s.History()
	h[0] = engine.Move{}
	if s.History()[0].String() != "c2-c4" {
		t.Fatal("History should return a copy")
	}
}

func TestLogsMoves(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(WithLogger(zap.New(core)), WithID("logged"))
	roninRaid(t, s)

	if n := logs.FilterMessage("move applied").Len(); n != 8 {
		t.Fatalf("expected 8 move logs, got %d", n)
	}
	over := logs.FilterMessage("game over").All()
	if len(over) != 1 {
		t.Fatalf("expected one game over log, got %d", len(over))
	}
	fields := over[0].ContextMap()
	if fields["winner"] != "Blue" || fields["session"] != "logged" {
		t.Fatalf("unexpected game over fields %v", fields)
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateSelecting:     "selecting",
		StatePieceSelected: "piece_selected",
		StateGameOver:      "game_over",
		State(42):          "unknown",
	} {
		if got := state.String(); got != want {
			t.Fatalf("State(%d): expected %s, got %s", state, want, got)
		}
	}
}
