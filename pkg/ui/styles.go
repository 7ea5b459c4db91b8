package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	darkGrayHex = "#333333"
)

var (
	// Row colors
	ItemLinePrimaryFocused     = lipgloss.NewStyle().Foreground(Fuchsia)
	ItemLineSecondaryFocused   = lipgloss.NewStyle().Foreground(DullFuchsia)
	ItemLinePrimaryUnfocused   = lipgloss.NewStyle().Foreground(Normal)
	ItemLineSecondaryUnfocused = lipgloss.NewStyle().Foreground(DimBrightGray)
	MatchedText                = lipgloss.NewStyle().Underline(true)

	Normal        = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}
	BrightGray    = lipgloss.AdaptiveColor{Light: "#847A85", Dark: "#979797"}
	DimBrightGray = lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"}
	Green         = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	Fuchsia       = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	DullFuchsia   = lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"}
	YellowGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"}
	FaintRed      = lipgloss.AdaptiveColor{Light: "#FF6F91", Dark: "#C74665"}

	AppStyle         = lipgloss.NewStyle().Padding(1, 2)
	PromptStyle      = lipgloss.NewStyle().Foreground(YellowGreen)
	HeaderStyle      = lipgloss.NewStyle().Bold(true)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(BrightGray).Italic(true)
	StatusStyle      = lipgloss.NewStyle().Foreground(Green)
	NoResultsStyle   = lipgloss.NewStyle().Foreground(FaintRed)
	ErrorStyle       = lipgloss.NewStyle().Foreground(FaintRed).Bold(true)
	DividerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(darkGrayHex))
)

// GlamourStyle picks the glamour theme matching the terminal background.
func GlamourStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
