package dispatcher

// PlayMode selects how the dispatcher reacts to the end of a track.
type PlayMode int

const (
	// PlayOne plays a single track; nothing follows it.
	PlayOne PlayMode = iota
	// Playlist consumes the queue track by track.
	Playlist
)

// String returns the play mode name.
func (m PlayMode) String() string {
	switch m {
	case PlayOne:
		return "One"
	case Playlist:
		return "Playlist"
	default:
		return "Unknown"
	}
}

// RepeatMode defines the repeat behavior for playlist playback.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatOne
	RepeatAll
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "Off"
	case RepeatOne:
		return "One"
	case RepeatAll:
		return "All"
	default:
		return "Unknown"
	}
}

// ParseRepeatMode maps a config value to a repeat mode. Unrecognized
// values fall back to no repeat.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "one":
		return RepeatOne
	case "all":
		return RepeatAll
	}
	return RepeatNone
}

// Next cycles to the following repeat mode.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatNone
	}
}
