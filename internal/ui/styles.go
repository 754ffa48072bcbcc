package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("42")  // Green
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorSoil      = lipgloss.Color("179") // Sand for the assistant
	ColorBlue      = lipgloss.Color("75")  // Blue for the user

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Answer Box wraps assistant replies
	StyleAnswerBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSoil).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Chat prefixes
	StylePrefixUser    = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	StylePrefixBot     = lipgloss.NewStyle().Foreground(ColorSoil).Bold(true)
	StylePrefixError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrefixService = lipgloss.NewStyle().Foreground(ColorSecondary).Italic(true)

	// Selection lists
	StyleSelectTitle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectNormal = lipgloss.NewStyle().Foreground(ColorText)
	StyleSelectActive = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectDim    = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSelectBadge  = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
