package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants.
const (
	defaultWidth  = 100
	defaultHeight = 40
	borderPadding = 2
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyVimUp    = "k"
	keyVimDown  = "j"
	keyVimLeft  = "h"
	keyVimRight = "l"
	keyClear    = "c"
	keyReset    = "r"
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ValueStyle = lipgloss.NewStyle().Bold(true)
	FocusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	InfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	HelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)
