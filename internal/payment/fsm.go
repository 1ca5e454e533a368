// Package payment implements the payment view: a small state machine over a
// stored booking draft with a bounded number of simulated failures.
package payment

// State is the payment view state.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingSubmit State = "awaiting_submit"
	StateProcessing     State = "processing"
	StateSucceeded      State = "succeeded"
	StateFailed         State = "failed"
	StateBlocked        State = "blocked"
)

// FSM holds the allowed transitions.
type FSM struct {
	transitions map[State][]State
}

// NewFSM creates the payment FSM.
func NewFSM() *FSM {
	return &FSM{
		transitions: map[State][]State{
			StateIdle:           {StateAwaitingSubmit},
			StateAwaitingSubmit: {StateProcessing, StateFailed},
			StateProcessing:     {StateSucceeded, StateFailed},
			StateFailed:         {StateAwaitingSubmit, StateBlocked},
		},
	}
}

// CanTransition checks if transition is allowed.
func (f *FSM) CanTransition(from, to State) bool {
	for _, s := range f.transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (f *FSM) Terminal(s State) bool {
	return len(f.transitions[s]) == 0
}
