package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp renders the help bar under the form.
// In leader mode the bar is boxed and prefixed with the pending sequence
// (e.g. "SPC"); with full set, every binding is listed.
func RenderKeybindHelp(keyHandler *KeyHandler, full bool) string {
	if keyHandler == nil {
		return ""
	}
	km := NewKeyMap(keyHandler.Registry, keyHandler)

	helpModel := help.New()
	helpModel.ShowAll = full
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint
	helpModel.Styles.FullKey = helpModel.Styles.ShortKey
	helpModel.Styles.FullDesc = Styles.Hint

	content := helpModel.View(km)
	if !keyHandler.LeaderWaiting {
		return content
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)

	prefix := keyHandler.LeaderSeq
	if len(keyHandler.Buffer) > 1 {
		prefix = strings.Join(keyHandler.Buffer, " ")
	}
	return boxStyle.Render(Styles.Hint.Render(prefix) + " " + content)
}
