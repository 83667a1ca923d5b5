package model

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ProviderFetch ErrorKind = iota + 1
	Persistence
	Configuration
)

func (k ErrorKind) String() string {
	switch k {
	case ProviderFetch:
		return "provider fetch"
	case Persistence:
		return "persistence"
	case Configuration:
		return "configuration"
	}
	return "unknown"
}

var ErrUnauthorized = errors.New("not authorized")

// Error is the single error type returned across package boundaries.
// StatusCode is only set for provider responses.
type Error struct {
	Kind       ErrorKind
	Stage      string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Stage != "" {
		msg += " (" + e.Stage + ")"
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: Persistence}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Stage == "" && t.StatusCode == 0
}

func NewProviderError(statusCode int, message string, err error) *Error {
	return &Error{Kind: ProviderFetch, StatusCode: statusCode, Message: message, Err: err}
}

func NewPersistenceError(message string, err error) *Error {
	return &Error{Kind: Persistence, Message: message, Err: err}
}

func NewConfigurationError(message string) *Error {
	return &Error{Kind: Configuration, Message: message}
}

// KindOf returns the kind of the first *Error in the chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// WithStage tags err with the poll stage it failed in, defaulting unknown errors to a provider fetch.
func WithStage(stage string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		c := *e
		c.Stage = stage
		return &c
	}
	return &Error{Kind: ProviderFetch, Stage: stage, Err: err}
}
