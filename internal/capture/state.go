package capture

import "github.com/raysh454/webshot/internal/logging"

// State is a step in the capture lifecycle. Transitions only move forward:
// Idle, Launching, Navigating, Settling, Capturing, ClosingSession, then Done
// or Failed.
type State int

const (
	StateIdle State = iota
	StateLaunching
	StateNavigating
	StateSettling
	StateCapturing
	StateClosingSession
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateLaunching:      "launching",
	StateNavigating:     "navigating",
	StateSettling:       "settling",
	StateCapturing:      "capturing",
	StateClosingSession: "closing_session",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

func (s State) Terminal() bool { return s == StateDone || s == StateFailed }

// lifecycle records transitions and reports them to the logger and an
// optional observer.
type lifecycle struct {
	current  State
	logger   logging.Logger
	observer func(from, to State)
}

func (l *lifecycle) to(next State) {
	prev := l.current
	l.current = next
	l.logger.Debug("state transition",
		logging.Field{Key: "from", Value: prev.String()},
		logging.Field{Key: "to", Value: next.String()})
	if l.observer != nil {
		l.observer(prev, next)
	}
}
