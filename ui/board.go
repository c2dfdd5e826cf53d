// Package ui specifies custom controls for tview to play Samurai Tactics in
// the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"samurai-tactics/config"
	"samurai-tactics/engine"
	"samurai-tactics/rules"
	"samurai-tactics/types"
)

const (
	cellW   = 4 // terminal columns per square
	cellH   = 2 // terminal rows per square
	marginX = 3 // room for rank numbers
)

// BoardUI draws the board in a tview Box and forwards input to a GameEngine.
type BoardUI struct {
	Box       *tview.Box
	hint      *tview.TextView
	cfg       *config.Config
	eng       engine.GameEngine
	styles    boardStyles
	infoPanel *GameInfoPanel
	focusMode bool

	curRow, curCol   int
	originX, originY int
}

type boardStyles struct {
	light, dark, cursor, selected, legal tcell.Color
	red, blue, label                     tcell.Color
}

// NewBoard creates the board widget. Call ConnectEngine before drawing.
func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		curRow: -1,
		curCol: -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	board.Box.SetMouseCapture(board.mouse)
	return board
}

// mouse selects the clicked square. A nil event marks the click as handled.
func (g *BoardUI) mouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick {
		return action, event
	}
	x, y := event.Position()
	if row, col, ok := g.squareAt(x, y); ok {
		g.curRow, g.curCol = row, col
		g.Select(row, col)
		return action, nil
	}
	return action, event
}

// ConnectEngine attaches the board to a game.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e
	e.OnMove(func(m engine.Move, state engine.RenderState) {
		g.refreshHint()
	})
	e.OnGameEnd(func(winner types.Player) {
		g.ResetCursor()
		g.refreshHint()
	})
	g.refreshHint()
}

// SetConfig applies the theme colors and symbols from c.
func (g *BoardUI) SetConfig(c *config.Config) {
	col := c.Theme.Colors
	g.styles = boardStyles{
		light:    tcell.PaletteColor(col.BoardLight),
		dark:     tcell.PaletteColor(col.BoardDark),
		cursor:   tcell.PaletteColor(col.CursorBG),
		selected: tcell.PaletteColor(col.SelectedBG),
		legal:    tcell.PaletteColor(col.LegalBG),
		red:      tcell.PaletteColor(col.Red),
		blue:     tcell.PaletteColor(col.Blue),
		label:    tcell.PaletteColor(col.Label),
	}
	g.cfg = c
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// Cursor returns the cursor square, or nil if the cursor is hidden.
func (g *BoardUI) Cursor() *types.Coord {
	if g.curRow == -1 && g.curCol == -1 {
		return nil
	}
	return &types.Coord{Row: g.curRow, Col: g.curCol}
}

// MoveCursor moves the cursor by (v rows, h columns). The first call shows
// the cursor on the selected piece, or on the current player's Daimyo.
func (g *BoardUI) MoveCursor(h, v int) {
	if g.Cursor() == nil {
		g.curRow, g.curCol = g.cursorHome()
		return
	}
	to := types.Coord{Row: g.curRow + v, Col: g.curCol + h}
	if !to.OnBoard() {
		return
	}
	g.curRow, g.curCol = to.Row, to.Col
}

func (g *BoardUI) cursorHome() (int, int) {
	if g.eng == nil {
		return types.Rows / 2, types.Cols / 2
	}
	state := g.eng.RenderState()
	if state.HasSelection {
		return state.Selected.Row, state.Selected.Col
	}
	for row := 0; row < types.Rows; row++ {
		for col := 0; col < types.Cols; col++ {
			if p := state.Board[row][col]; p.Kind == types.Daimyo && p.Owner == state.CurrentPlayer {
				return row, col
			}
		}
	}
	return types.Rows / 2, types.Cols / 2
}

// ResetCursor hides the cursor.
func (g *BoardUI) ResetCursor() {
	g.curRow = -1
	g.curCol = -1
}

// SelectCursor selects the square under the cursor.
func (g *BoardUI) SelectCursor() {
	if c := g.Cursor(); c != nil {
		g.Select(c.Row, c.Col)
	}
}

// Select forwards a square to the engine.
func (g *BoardUI) Select(row, col int) {
	if g.eng == nil {
		return
	}
	g.eng.Select(row, col)
	g.refreshHint()
}

// Restart returns the game to the starting layout.
func (g *BoardUI) Restart() {
	if g.eng == nil {
		return
	}
	g.eng.Reset()
	g.ResetCursor()
	g.refreshHint()
}

// HasSelection reports whether a piece is currently picked up.
func (g *BoardUI) HasSelection() bool {
	return g.eng != nil && g.eng.RenderState().HasSelection
}

// ClearSelection drops the picked-up piece by selecting it again.
func (g *BoardUI) ClearSelection() {
	if !g.HasSelection() {
		return
	}
	sel := g.eng.RenderState().Selected
	g.Select(sel.Row, sel.Col)
}

// squareAt maps a screen position to a board square using the last drawn
// origin.
func (g *BoardUI) squareAt(x, y int) (int, int, bool) {
	dx, dy := x-g.originX, y-g.originY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	c := types.Coord{Row: dy / cellH, Col: dx / cellW}
	if !c.OnBoard() {
		return 0, 0, false
	}
	return c.Row, c.Col, true
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if g.eng == nil {
		return x, y, 1, 1
	}
	state := g.eng.RenderState()
	g.originX, g.originY = x+marginX, y

	for row := 0; row < types.Rows; row++ {
		for col := 0; col < types.Cols; col++ {
			c := types.Coord{Row: row, Col: col}
			g.drawSquare(screen, state, c, g.originX+col*cellW, g.originY+row*cellH)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, types.Cols*cellW + marginX, types.Rows*cellH + 1
}

func (g *BoardUI) background(state engine.RenderState, c types.Coord) tcell.Color {
	switch {
	case c.Row == g.curRow && c.Col == g.curCol:
		return g.styles.cursor
	case state.HasSelection && state.Selected == c:
		return g.styles.selected
	case state.Legal.Has(c):
		return g.styles.legal
	case (c.Row+c.Col)%2 == 1:
		return g.styles.dark
	default:
		return g.styles.light
	}
}

func (g *BoardUI) drawSquare(s tcell.Screen, state engine.RenderState, c types.Coord, left, top int) {
	style := tcell.StyleDefault.Background(g.background(state, c))
	for dy := 0; dy < cellH; dy++ {
		for dx := 0; dx < cellW; dx++ {
			s.SetContent(left+dx, top+dy, ' ', nil, style)
		}
	}

	p := state.Board.At(c)
	if p.IsEmpty() {
		if state.Legal.Has(c) {
			s.SetContent(left+1, top, '·', nil, style.Foreground(g.styles.label))
		}
		return
	}
	fg := g.styles.red
	if p.Owner == types.Blue {
		fg = g.styles.blue
	}
	// Wide emoji take two columns starting at left+1.
	s.SetContent(left+1, top, g.cfg.Theme.Symbol(p.Kind), nil, style.Foreground(fg).Bold(true))
}

func (g *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault.Foreground(g.styles.label)
	highlight := tcell.StyleDefault.Background(g.styles.cursor)

	for col := 0; col < types.Cols; col++ {
		st := style
		if col == g.curCol {
			st = highlight
		}
		s.SetContent(g.originX+col*cellW+1, y+types.Rows*cellH, rune('a'+col), nil, st)
	}
	for row := 0; row < types.Rows; row++ {
		st := style
		if row == g.curRow {
			st = highlight
		}
		s.SetContent(x+1, y+row*cellH, rune('1'+row), nil, st)
	}
}

func (g *BoardUI) refreshHint() {
	if g.eng == nil {
		return
	}
	state := g.eng.RenderState()
	if g.infoPanel != nil {
		g.infoPanel.SetState(state, g.eng.History())
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, controlsLine string
	if state.Finished() {
		statusLine = fmt.Sprintf("  %s wins!  The Daimyo has fallen.", state.Winner)
		controlsLine = "\n  r restart   q menu"
	} else {
		statusLine = fmt.Sprintf("  Current player: %s", state.CurrentPlayer)
		switch {
		case state.HasSelection && state.Legal.Empty():
			statusLine += fmt.Sprintf("  (%s cannot move)", state.Board.At(state.Selected).Kind)
		case state.HasSelection:
			statusLine += fmt.Sprintf("  (%s on %s)", state.Board.At(state.Selected).Kind, state.Selected)
		case rules.Movable(state.Board, state.CurrentPlayer).Empty():
			statusLine += "  (no legal moves)"
		}
		controlsLine = "\n  hjkl/↑↓←→ move   ⏎/space select   r restart   f focus   q back"
	}
	g.hint.SetText(statusLine + controlsLine)
}
