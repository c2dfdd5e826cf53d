// Package session implements engine.GameEngine for two players sharing one
// board.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"samurai-tactics/engine"
	"samurai-tactics/rules"
	"samurai-tactics/telemetry"
	"samurai-tactics/types"
)

// Session owns the board and selection for one game.
type Session struct {
	id     string
	log    *zap.Logger
	tracer trace.Tracer

	board    types.Board
	state    State
	player   types.Player
	selected types.Coord
	legal    types.Squares
	winner   types.Player
	history  []engine.Move

	moveCallback func(m engine.Move, state engine.RenderState)
	endCallback  func(winner types.Player)

	mu sync.Mutex
}

var _ engine.GameEngine = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for selections and moves.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithTracer sets the tracer that wraps each Select call in a span.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session at the starting layout with Red to move.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		log:    zap.NewNop(),
		tracer: telemetry.NoopTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.id))
	s.reset()
	return s
}

// ID returns the session identifier used in logs and spans.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RenderState returns a snapshot of the board, turn, selection and result.
func (s *Session) RenderState() engine.RenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot must be called while holding the lock.
func (s *Session) snapshot() engine.RenderState {
	return engine.RenderState{
		Board:         s.board,
		CurrentPlayer: s.player,
		Selected:      s.selected,
		HasSelection:  s.state == StatePieceSelected,
		Legal:         s.legal,
		Winner:        s.winner,
		MoveNumber:    len(s.history),
	}
}

// Select advances the state machine with a click on (row, col).
func (s *Session) Select(row, col int) {
	at := types.Coord{Row: row, Col: col}
	_, span := s.tracer.Start(context.Background(), telemetry.SelectSpan,
		trace.WithAttributes(telemetry.SelectAttributes(s.id, at.Notation(), row, col)...))
	defer span.End()

	s.mu.Lock()
	span.SetAttributes(telemetry.StateBeforeKey.String(s.state.String()))

	var (
		move     engine.Move
		moved    bool
		finished bool
	)
	switch {
	case s.state == StateGameOver || !at.OnBoard():
		// ignored
	case s.state == StateSelecting:
		s.trySelect(at)
	case s.legal.Has(at):
		move, finished = s.apply(at)
		moved = true
		captured := ""
		if !move.Captured.IsEmpty() {
			captured = move.Captured.String()
		}
		telemetry.RecordMove(span, move.String(), captured)
		if finished {
			telemetry.RecordGameOver(span, s.winner.String())
		}
	case at == s.selected:
		s.log.Debug("piece deselected", zap.Stringer("square", at))
		s.clearSelection()
	default:
		s.clearSelection()
		s.trySelect(at)
	}

	span.SetAttributes(telemetry.StateAfterKey.String(s.state.String()))
	state := s.snapshot()
	winner := s.winner
	s.mu.Unlock()

	// Notify callbacks outside the lock so they may read the session.
	if moved && s.moveCallback != nil {
		s.moveCallback(move, state)
	}
	if finished && s.endCallback != nil {
		s.endCallback(winner)
	}
}

// trySelect picks up the piece at c if it belongs to the player to move.
// Must be called while holding the lock.
func (s *Session) trySelect(c types.Coord) {
	if s.board.At(c).Owner != s.player {
		return
	}
	s.state = StatePieceSelected
	s.selected = c
	s.legal = rules.LegalDestinations(s.board, c)
	s.log.Debug("piece selected",
		zap.Stringer("square", c),
		zap.Stringer("piece", s.board.At(c)),
		zap.Int("destinations", s.legal.Len()))
}

// apply plays the selected piece to the legal square to. Must be called
// while holding the lock.
func (s *Session) apply(to types.Coord) (engine.Move, bool) {
	from := s.selected
	result := rules.ApplyMove(s.board, from, to)

	move := engine.Move{From: from, To: to, Piece: result.Moved, Captured: result.Captured}
	s.board = result.Board
	s.history = append(s.history, move)
	s.clearSelection()

	fields := []zap.Field{
		zap.Stringer("player", s.player),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("piece", result.Moved.Kind),
	}
	if result.Capture() {
		fields = append(fields, zap.Stringer("captured", result.Captured))
	}
	s.log.Info("move applied", fields...)

	if result.Winner != types.NoPlayer {
		s.winner = result.Winner
		s.state = StateGameOver
		s.log.Info("game over", zap.Stringer("winner", s.winner), zap.Int("moves", len(s.history)))
		return move, true
	}
	s.player = s.player.Opponent()
	return move, false
}

// clearSelection must be called while holding the lock.
func (s *Session) clearSelection() {
	if s.state == StatePieceSelected {
		s.state = StateSelecting
	}
	s.selected = types.Coord{}
	s.legal = 0
}

// Reset restores the starting layout, Red to move, from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.log.Info("game reset")
}

func (s *Session) reset() {
	s.board = types.NewBoard()
	s.state = StateSelecting
	s.player = types.Red
	s.selected = types.Coord{}
	s.legal = 0
	s.winner = types.NoPlayer
	s.history = nil
}

// History returns a copy of the moves applied since the last reset.
func (s *Session) History() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.Move, len(s.history))
	copy(out, s.history)
	return out
}

// OnMove registers a callback for when a move is applied.
func (s *Session) OnMove(callback func(m engine.Move, state engine.RenderState)) {
	s.moveCallback = callback
}

// OnGameEnd registers a callback for when a Daimyo is captured.
func (s *Session) OnGameEnd(callback func(winner types.Player)) {
	s.endCallback = callback
}
