package ui

import (
	"context"

	"bincheck/internal/lookup"

	tea "github.com/charmbracelet/bubbletea"
)

// lookupCmd returns a command that performs the lookup for ticket off the
// event loop and reports back with LookupCompleteMsg. The form stays
// editable while it runs.
func lookupCmd(ctx context.Context, l lookup.Lookuper, ticket lookup.Ticket) tea.Cmd {
	return func() tea.Msg {
		return LookupCompleteMsg{Outcome: lookup.Run(ctx, l, ticket)}
	}
}
