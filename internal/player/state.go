package player

// State is the observable engine state. It is a pure function of the
// two engine-reported flags and is never set directly:
//
//	Stopped if idle
//	Paused  if !idle && paused
//	Playing otherwise
type State int

const (
	Stopped State = iota
	Paused
	Playing
)

// StateOf computes the state from the engine flags.
func StateOf(idle, paused bool) State {
	if idle {
		return Stopped
	}
	if paused {
		return Paused
	}
	return Playing
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
