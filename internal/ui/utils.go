package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// IsInteractive checks if stdout is a terminal.
func IsInteractive() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// RenderPageHeader writes a consistent styled header for commands
func RenderPageHeader(w io.Writer, title, subtitle string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		MarginBottom(1)

	_, _ = fmt.Fprintln(w, titleStyle.Render("🌾 "+title))
	if subtitle != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(subtitle))
	}
}

// Panel is a bordered box with an optional title.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
	Width       int
}

// NewPanel creates a new panel with default styling.
func NewPanel(title, content string) *Panel {
	return &Panel{
		Title:       title,
		Content:     content,
		BorderColor: ColorSecondary,
	}
}

// WithBorderColor sets the border color and returns the panel.
func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

// WithWidth sets the panel width and returns the panel.
func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// Render returns the styled panel as a string.
func (p *Panel) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)

	content := p.Content
	if p.Width > 0 {
		style = style.Width(p.Width)
		content = Wrap(content, p.Width-2)
	}
	if p.Title != "" {
		content = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(p.Title) + "\n" + content
	}
	return style.Render(content)
}

// RenderAnswer renders an assistant reply with the name of the service that produced it.
func RenderAnswer(text, service string, width int) string {
	body := NewPanel("", strings.TrimSpace(text)).WithBorderColor(ColorSoil)
	if width > 0 {
		body = body.WithWidth(width)
	}
	out := body.Render()
	if service != "" {
		out += "\n" + StylePrefixService.Render("  via "+service)
	}
	return out
}

// RenderErrorPanel renders a panel with error styling (red border).
func RenderErrorPanel(title, content string) string {
	return NewPanel(title, content).WithBorderColor(ColorError).Render()
}

// Truncate shortens s to maxLen runes, adding an ellipsis if needed.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// Wrap word-wraps text to width, hard-breaking words longer than the width.
// Width is measured in terminal cells, so emoji and Arabic text wrap correctly.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}
