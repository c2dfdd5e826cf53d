package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the palette for the start menu.
var MenuColors = struct {
	CardBG     tcell.Color // Field background
	Label      tcell.Color // Form labels
	ButtonBG   tcell.Color // Button background
	ButtonText tcell.Color // Button text
}{
	CardBG:     tcell.PaletteColor(236),
	Label:      tcell.PaletteColor(250),
	ButtonBG:   tcell.PaletteColor(88),
	ButtonText: tcell.PaletteColor(255),
}
