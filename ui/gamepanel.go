package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"samurai-tactics/engine"
	"samurai-tactics/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box     *tview.TextView
	state   *engine.RenderState
	history []engine.Move
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game state and move list.
func (p *GameInfoPanel) SetState(state engine.RenderState, history []engine.Move) {
	p.state = &state
	p.history = history
	p.box.SetText(p.text())
}

func playerTag(pl types.Player) string {
	if pl == types.Blue {
		return "[blue::b]Blue[-:-:-]"
	}
	return "[red::b]Red[-:-:-]"
}

func (p *GameInfoPanel) text() string {
	if p.state == nil {
		return ""
	}

	var text string
	text += "[white::b]Samurai Tactics[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	if p.state.Finished() {
		text += fmt.Sprintf("%s wins!\n", playerTag(p.state.Winner))
	} else {
		text += fmt.Sprintf("[white]To move:[-:-:-] %s\n", playerTag(p.state.CurrentPlayer))
	}
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.state.MoveNumber)

	if len(p.history) == 0 {
		return text
	}

	text += "\n[white::b]Moves[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	maxVisible := 12
	start := 0
	if len(p.history) > maxVisible {
		start = len(p.history) - maxVisible
	}
	for i := start; i < len(p.history); i++ {
		m := p.history[i]
		marker := " "
		if i == len(p.history)-1 {
			marker = "[white]>[-]"
		}
		capture := ""
		if !m.Captured.IsEmpty() {
			capture = fmt.Sprintf(" [dimgray]takes %s[-]", m.Captured.Kind)
		}
		text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s %s%s\n",
			marker, i+1, playerTag(m.Piece.Owner), m.Piece.Kind, m, capture)
	}
	if start > 0 {
		text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
	}
	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	board.refreshHint()

	// board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 34, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 2, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	boardWidth := types.Cols*cellW + marginX
	boardHeight := types.Rows*cellH + 1

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
