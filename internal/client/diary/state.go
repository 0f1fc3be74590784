package diary

import "fmt"

type State int

const (
	StateNoFileSelected State = iota
	StateAwaitingPassword
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateNoFileSelected:
		return "no-file"
	case StateAwaitingPassword:
		return "awaiting-password"
	case StateUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Event int

const (
	// EventFileChosen: a data file was selected, created or resumed.
	EventFileChosen Event = iota
	// EventImported: a file was uploaded over the current session.
	EventImported
	EventUnlocked
	EventLocked
)

func (e Event) String() string {
	switch e {
	case EventFileChosen:
		return "file-chosen"
	case EventImported:
		return "imported"
	case EventUnlocked:
		return "unlocked"
	case EventLocked:
		return "locked"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Transition returns the state reached from s on e.
func Transition(s State, e Event) (State, error) {
	switch e {
	case EventLocked:
		return StateNoFileSelected, nil
	case EventImported:
		return StateAwaitingPassword, nil
	case EventFileChosen:
		if s == StateUnlocked {
			return s, fmt.Errorf("%w: lock the diary before choosing another file", ErrInvalidState)
		}
		return StateAwaitingPassword, nil
	case EventUnlocked:
		if s != StateAwaitingPassword {
			return s, fmt.Errorf("%w: cannot unlock from %s", ErrInvalidState, s)
		}
		return StateUnlocked, nil
	}
	return s, fmt.Errorf("%w: unknown event %s", ErrInvalidState, e)
}
