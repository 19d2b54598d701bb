// Package lookup is the BIN lookup view-state controller.
//
// State is a plain value owned by the caller. Operations take the current
// State and return the next one; nothing here holds hidden mutable state, so
// the same controller backs the terminal UI (driven by Bubble Tea's event
// loop) and the web handler (driven synchronously per request).
//
// Transitions:
//
//	Idle/Error/Success --Begin--> Loading --Resolve--> Error | Success
//	Idle/Error/Success --Begin--> Error            (fewer than 6 digits)
//	any               --Reset--> Idle
package lookup

import "bincheck/internal/bin"

// Phase is the active view state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoading:
		return "Loading"
	case PhaseError:
		return "Error"
	case PhaseSuccess:
		return "Success"
	default:
		return "Unknown"
	}
}

// State is the complete interaction state of one lookup form.
//
// Message is set only in PhaseError and Result only in PhaseSuccess.
// Generation identifies the latest issued request; outcomes carrying any
// other id are stale and ignored.
type State struct {
	Input      string
	Phase      Phase
	Message    string
	Result     *bin.Result
	Cause      error // underlying failure behind Message, never shown to users
	Generation uint64
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// Ticket identifies one issued lookup request.
type Ticket struct {
	ID     uint64
	Digits string
}

// Outcome is the result of running a Ticket.
type Outcome struct {
	Ticket Ticket
	Result *bin.Result
	Err    error
}
