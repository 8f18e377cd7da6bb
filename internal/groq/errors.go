package groq

import (
	"errors"
	"fmt"
)

// Kind classifies a failed conversion request. Every failure the client
// can produce maps to exactly one kind; callers use it to pick a
// user-facing message and must not retry automatically.
type Kind uint8

const (
	// KindInvalidInput means the source text was empty or unusable.
	KindInvalidInput Kind = iota + 1
	// KindInvalidCredential means the API key was missing or rejected.
	KindInvalidCredential
	// KindRateLimited means the per-minute or daily quota was exhausted.
	KindRateLimited
	// KindTimeout means the request exceeded its deadline.
	KindTimeout
	// KindUpstream covers every other provider-side failure.
	KindUpstream
)

// String returns the stable identifier of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by Client.Convert.
type Error struct {
	Kind   Kind
	Status int // HTTP status when the provider answered, 0 otherwise
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("groq: %s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("groq: %s: %v", e.Kind, e.Err)
	}
	return "groq: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, or 0 when err does not
// originate from this package.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}
