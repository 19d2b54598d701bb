package binlist

import (
	"fmt"

	"bincheck/internal/metrics"
)

// Kind classifies why a lookup failed. Callers that only need the user-facing
// message can ignore it; it exists for logs, metrics and tests.
type Kind int

const (
	KindTransport Kind = iota + 1 // request never produced a response
	KindStatus                    // response status outside 2xx
	KindDecode                    // 2xx with a body that is not a lookup record
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// outcome maps the kind onto the metrics label.
func (k Kind) outcome() string {
	switch k {
	case KindTransport:
		return metrics.OutcomeTransport
	case KindStatus:
		return metrics.OutcomeStatus
	default:
		return metrics.OutcomeDecode
	}
}

// Error is returned by Client.Lookup for every failed lookup.
type Error struct {
	Kind       Kind
	Digits     string
	StatusCode int    // KindStatus only
	Body       string // KindStatus only, truncated
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("lookup %s: unexpected status %d", e.Digits, e.StatusCode)
	default:
		return fmt.Sprintf("lookup %s: %s: %v", e.Digits, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }
