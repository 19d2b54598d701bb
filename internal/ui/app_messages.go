package ui

import "bincheck/internal/lookup"

// SubmitMsg is sent when the user submits the form (Enter).
type SubmitMsg struct{}

// ResetMsg clears the form back to Idle (ctrl+r or SPC r).
type ResetMsg struct{}

// ToggleHelpMsg shows or hides the full keybinding list (SPC ?).
type ToggleHelpMsg struct{}

// LookupCompleteMsg carries the outcome of a lookup started by SubmitMsg.
// Outcomes for superseded tickets are dropped by lookup.Resolve.
type LookupCompleteMsg struct {
	Outcome lookup.Outcome
}
