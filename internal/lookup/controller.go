package lookup

import (
	"context"
	"errors"
	"fmt"

	"bincheck/internal/bin"
)

// Lookuper performs the external lookup. *binlist.Client implements it.
type Lookuper interface {
	Lookup(ctx context.Context, digits string) (*bin.Result, error)
}

var errNoResult = errors.New("lookup returned no result")

// Observer receives every state Submit passes through, in order.
type Observer func(State)

// UpdateInput replaces the input with its sanitized form. It never triggers
// validation or a lookup and leaves the phase alone.
func UpdateInput(s State, raw string) State {
	s.Input = bin.Sanitize(raw)
	return s
}

// Begin starts a submission of s.Input.
//
// While a request is in flight, Begin is a no-op and returns a nil ticket.
// Input shorter than bin.MinDigits moves to Error with the validation
// message and no ticket. Otherwise the state moves to Loading, prior
// message and result are cleared, and the returned ticket must be run and
// handed back to Resolve.
func Begin(s State) (State, *Ticket) {
	if s.Loading() {
		return s, nil
	}
	if err := bin.Validate(s.Input); err != nil {
		s.Phase = PhaseError
		s.Message = bin.ValidationMessage
		s.Result = nil
		s.Cause = err
		return s, nil
	}
	s.Generation++
	s.Phase = PhaseLoading
	s.Message = ""
	s.Result = nil
	s.Cause = nil
	return s, &Ticket{ID: s.Generation, Digits: s.Input}
}

// Resolve applies an outcome. Outcomes from superseded tickets are dropped.
// Any failure, or a missing result, becomes Error with the generic failure
// message; the cause is kept on State.Cause.
func Resolve(s State, o Outcome) State {
	if o.Ticket.ID != s.Generation || !s.Loading() {
		return s
	}
	if o.Err != nil || o.Result == nil {
		s.Phase = PhaseError
		s.Message = bin.FailureMessage
		s.Result = nil
		s.Cause = o.Err
		if s.Cause == nil {
			s.Cause = errNoResult
		}
		return s
	}
	s.Phase = PhaseSuccess
	s.Message = ""
	s.Result = o.Result
	s.Cause = nil
	return s
}

// Reset returns to Idle, clearing input, message and result. Any request
// still in flight is invalidated.
func Reset(s State) State {
	return State{Generation: s.Generation + 1}
}

// Run performs the single lookup for t. A panicking Lookuper is converted
// into an error outcome so the caller can always leave Loading.
func Run(ctx context.Context, l Lookuper, t Ticket) (o Outcome) {
	o.Ticket = t
	defer func() {
		if r := recover(); r != nil {
			o.Result = nil
			o.Err = fmt.Errorf("lookup %s: panic: %v", t.Digits, r)
		}
	}()
	o.Result, o.Err = l.Lookup(ctx, t.Digits)
	return o
}

// Submit runs Begin, Run and Resolve back to back for callers without an
// event loop. observe, if non-nil, sees each intermediate state.
func Submit(ctx context.Context, s State, l Lookuper, observe Observer) State {
	next, ticket := Begin(s)
	if observe != nil {
		observe(next)
	}
	if ticket == nil {
		return next
	}
	final := Resolve(next, Run(ctx, l, *ticket))
	if observe != nil {
		observe(final)
	}
	return final
}
