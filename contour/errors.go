package contour

import "fmt"

// Kind classifies the ways a build can fail, per spec §7. All of them
// indicate programmer error or degenerate input; none are
// recoverable at this layer.
//
// Grounded on detour.Status, which implements the error interface
// over a small closed set of failure categories. Kind drops Status's
// bit-flag packing (success/failure/detail all share one uint32)
// since the five kinds here are mutually exclusive outcomes, not
// combinable flags — a plain comparable enum lets callers use
// errors.Is directly.
type Kind int

const (
	// InvalidTIN means the builder was handed a TIN that has not
	// been bootstrapped (no edges, or a nil TIN).
	InvalidTIN Kind = iota
	// InvalidContourLevels means Z was empty or not strictly
	// increasing.
	InvalidContourLevels
	// InvalidValue means the Valuator produced NaN or an infinite
	// value for some vertex.
	InvalidValue
	// StructuralFailure means the walker could not locate a
	// transition where the state machine guarantees one exists.
	StructuralFailure
	// IntegrityFailure means the §6.4 area-sum check did not hold
	// within tolerance.
	IntegrityFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidTIN:
		return "invalid TIN"
	case InvalidContourLevels:
		return "invalid contour levels"
	case InvalidValue:
		return "invalid value"
	case StructuralFailure:
		return "structural failure"
	case IntegrityFailure:
		return "integrity failure"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is the error type every failure surfaced by this package
// takes. Kind identifies the category (for errors.Is); Msg carries
// the specific, human-readable detail.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is lets errors.Is(err, contour.ErrStructuralFailure) and friends
// match purely on Kind, ignoring Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors usable with errors.Is; their Msg is empty so only
// Kind participates in comparison.
var (
	ErrInvalidTIN           = &Error{Kind: InvalidTIN}
	ErrInvalidContourLevels = &Error{Kind: InvalidContourLevels}
	ErrInvalidValue         = &Error{Kind: InvalidValue}
	ErrStructuralFailure    = &Error{Kind: StructuralFailure}
	ErrIntegrityFailure     = &Error{Kind: IntegrityFailure}
)
