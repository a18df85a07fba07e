// Package statemachine implements a small finite state machine with guarded
// transitions, pre-transition actions and post-transition observers.
//
//	const (
//		Idle       = statemachine.StringState("idle")
//		Submitting = statemachine.StringState("submitting")
//		Submit     = statemachine.StringEvent("submit")
//	)
//
//	m := statemachine.MustNew(Idle,
//		statemachine.WithTransition(Idle, Submitting, Submit),
//		statemachine.WithObserver(func(ctx context.Context, from, to statemachine.State, evt statemachine.Event) {
//			log.Printf("%s -> %s via %s", from.Name(), to.Name(), evt.Name())
//		}),
//	)
//	err := m.Fire(ctx, Submit, nil)
//
// Fire returns a *TransitionError wrapping ErrNoTransitionAvailable when
// nothing is registered for the current state and event, or
// ErrTransitionRejected when a guard vetoed every candidate.
package statemachine
