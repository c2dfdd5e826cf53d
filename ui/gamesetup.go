package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"samurai-tactics/engine"
)

// GameSetupUI is the start menu shown before a game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	cfg  engine.GameConfig
}

// NewGameSetup creates the start menu. onSymbols is called when the piece
// symbol style changes.
func NewGameSetup(initial engine.GameConfig, onStart func(engine.GameConfig), onSymbols func(useEmoji bool), onQuit func()) *GameSetupUI {
	setup := &GameSetupUI{cfg: initial}

	symbolStyles := []string{"Letters (S R D N)", "Emoji (🤺 ⚔ 👹 🥷)"}
	selected := 0
	if initial.UseEmoji {
		selected = 1
	}

	form := tview.NewForm()
	form.AddDropDown("Pieces", symbolStyles, selected, func(option string, index int) {
		useEmoji := index == 1
		if useEmoji == setup.cfg.UseEmoji {
			return
		}
		setup.cfg.UseEmoji = useEmoji
		if onSymbols != nil {
			onSymbols(useEmoji)
		}
	})
	form.AddCheckbox("Focus mode", initial.FocusMode, func(checked bool) {
		setup.cfg.FocusMode = checked
	})
	form.AddButton("Start Game", func() {
		onStart(setup.cfg)
	})
	form.AddButton("Quit", func() {
		onQuit()
	})

	form.SetBorder(true)
	form.SetTitle(" Samurai Tactics ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetFieldBackgroundColor(MenuColors.CardBG)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Red moves first. Capture the enemy Daimyo to win.  Tab: navigate  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}
