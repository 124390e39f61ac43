package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OutputBox displays raw adb output in verbose mode.
type OutputBox struct {
	Title    string
	Lines    []string
	Width    int
	MaxLines int // 0 = unlimited
}

// NewOutputBox creates a box for content. Trailing blank lines are dropped.
func NewOutputBox(title, content string) *OutputBox {
	content = strings.TrimRight(strings.ReplaceAll(content, "\r\n", "\n"), "\n ")
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	return &OutputBox{
		Title: title,
		Lines: lines,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (o *OutputBox) SetWidth(width int) *OutputBox {
	o.Width = width
	return o
}

// SetMaxLines limits the number of lines displayed
func (o *OutputBox) SetMaxLines(max int) *OutputBox {
	o.MaxLines = max
	return o
}

// Render returns the styled box as a string
func (o *OutputBox) Render() string {
	width := o.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := o.Lines
	if o.MaxLines > 0 && len(lines) > o.MaxLines {
		hidden := len(lines) - o.MaxLines
		lines = append(lines[:o.MaxLines:o.MaxLines], fmt.Sprintf("... (%d more lines)", hidden))
	}
	if len(lines) == 0 {
		lines = []string{"(no output)"}
	}

	content := OutputTitleStyle.Render(o.Title) + "\n" +
		OutputContentStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-4).
		Padding(0, 1).
		Render(content)
}

// String implements fmt.Stringer
func (o *OutputBox) String() string {
	return o.Render()
}
