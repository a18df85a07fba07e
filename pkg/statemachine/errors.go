package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition     = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent          = errors.New("statemachine: nil event")
	ErrNilInitialState       = errors.New("statemachine: nil initial state")
	ErrNoTransitionAvailable = errors.New("statemachine: no transition available")
	ErrTransitionRejected    = errors.New("statemachine: transition rejected by guards")
)

// TransitionError reports which state and event Fire failed on.
// It unwraps to ErrNoTransitionAvailable or ErrTransitionRejected.
type TransitionError struct {
	State string
	Event string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v (state %q, event %q)", e.Err, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.Err }
