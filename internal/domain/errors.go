package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates widget failures so callers can react to them.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	// ErrKindMalformed: the index payload has no blogList array.
	ErrKindMalformed
	// ErrKindTransport: network failure, bad status or undecodable body.
	ErrKindTransport
	// ErrKindInvalidTopic: a nav link named a topic outside the closed set.
	ErrKindInvalidTopic
	// ErrKindMissingTarget: an optional view target could not be written.
	ErrKindMissingTarget
	// ErrKindSuperseded: a newer list load was issued before this one resolved.
	ErrKindSuperseded
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindMalformed:
		return "malformed"
	case ErrKindTransport:
		return "transport"
	case ErrKindInvalidTopic:
		return "invalid_topic"
	case ErrKindMissingTarget:
		return "missing_target"
	case ErrKindSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a LoadError's kind.
var (
	ErrMalformed     = &LoadError{Kind: ErrKindMalformed}
	ErrTransport     = &LoadError{Kind: ErrKindTransport}
	ErrInvalidTopic  = &LoadError{Kind: ErrKindInvalidTopic}
	ErrMissingTarget = &LoadError{Kind: ErrKindMissingTarget}
	ErrSuperseded    = &LoadError{Kind: ErrKindSuperseded}
)

// LoadError is the typed failure returned by widget operations.
type LoadError struct {
	Kind  ErrorKind
	Op    string
	Topic string
	Err   error
}

func (e *LoadError) Error() string {
	msg := e.Op
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Topic != "" {
		msg = fmt.Sprintf("%s (topic %q)", msg, e.Topic)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches any LoadError of the same kind.
func (e *LoadError) Is(target error) bool {
	t, ok := target.(*LoadError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first LoadError in err's chain.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ErrKindUnknown
}

// NewMalformedError wraps a payload shape problem.
func NewMalformedError(op string, err error) *LoadError {
	return &LoadError{Kind: ErrKindMalformed, Op: op, Err: err}
}

// NewTransportError wraps a network or decoding problem.
func NewTransportError(op string, err error) *LoadError {
	return &LoadError{Kind: ErrKindTransport, Op: op, Err: err}
}
