package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"samurai-tactics/engine"
	"samurai-tactics/ui"
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView

// runPlay opens the terminal UI. With quickStart the start menu is skipped.
func runPlay(quickStart bool) error {
	quickStart = quickStart || flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⚔ samurai tactics ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(cfg, gameHint)
	gameBoard.ConnectEngine(newSession())

	// Create game layout with board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(handleGameKey)

	gameCfg := engine.GameConfig{
		FocusMode: flagFocus,
		UseEmoji:  cfg.Theme.UseEmoji,
	}
	setupUI := ui.NewGameSetup(gameCfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		setSymbols,
		func() {
			app.Stop()
		},
	)

	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(gameCfg)
	}

	return app.SetRoot(rootPage, true).Run()
}

// handleGameKey is the input capture for the board.
func handleGameKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveCursor(0, -1)
	case tcell.KeyDown:
		gameBoard.MoveCursor(0, 1)
	case tcell.KeyLeft:
		gameBoard.MoveCursor(-1, 0)
	case tcell.KeyRight:
		gameBoard.MoveCursor(1, 0)
	case tcell.KeyEnter:
		gameBoard.SelectCursor()
	case tcell.KeyEsc:
		gameBoard.ClearSelection()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveCursor(-1, 0)
		case 'j':
			gameBoard.MoveCursor(0, 1)
		case 'k':
			gameBoard.MoveCursor(0, -1)
		case 'l':
			gameBoard.MoveCursor(1, 0)
		case ' ':
			gameBoard.SelectCursor()
		case 'r':
			gameBoard.Restart()
		case 'f':
			setFocus(gameBoard.ToggleFocusMode())
		case 'q':
			if gameBoard.HasSelection() {
				gameBoard.ClearSelection()
			} else {
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
	}
	return event
}

// startGame begins a new game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Restart()
	gameBoard.SetFocusMode(gameCfg.FocusMode)
	setFocus(gameCfg.FocusMode)
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
	logger.Info("game started", zap.Bool("focus", gameCfg.FocusMode), zap.Bool("emoji", gameCfg.UseEmoji))
}

func setFocus(enabled bool) {
	if enabled {
		ui.BuildFocusLayout(gameFrame, gameBoard)
	} else {
		ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
	}
}

// setSymbols switches between letter and emoji pieces and persists the
// choice.
func setSymbols(useEmoji bool) {
	cfg.Theme.UseEmoji = useEmoji
	gameBoard.SetConfig(cfg)
	if err := cfg.Save(); err != nil {
		logger.Warn("could not save config", zap.Error(err))
	}
}
