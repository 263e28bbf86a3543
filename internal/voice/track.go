package voice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrackState is the lifecycle state of a queue entry
type TrackState int

const (
	// StateQueued means the entry is waiting behind the current track
	StateQueued TrackState = iota
	// StatePlaying means the entry is the current track and audio is running
	StatePlaying
	// StatePaused means the entry is the current track but frames are gated
	StatePaused
)

func (s TrackState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// AuxMetadata is best-effort descriptive information about a track.
// Every field is optional; consumers treat zero values as "unknown".
type AuxMetadata struct {
	Title     string
	SourceURL string
	Thumbnail string
	Duration  time.Duration
}

// TrackEntry is one playable item in a guild's queue. Apart from metadata
// population and state transitions it is immutable once enqueued.
type TrackEntry struct {
	ID        string
	Source    string // URL or ytsearch handle handed to the engine
	Requester string // user ID of whoever ran /play
	ChannelID string // text channel the play command came from
	Metadata  AuxMetadata

	state TrackState
}

// NewTrackEntry creates an entry for a playable source
func NewTrackEntry(source, requester, channelID string) *TrackEntry {
	return &TrackEntry{
		ID:        uuid.NewString(),
		Source:    source,
		Requester: requester,
		ChannelID: channelID,
		state:     StateQueued,
	}
}

// State returns the entry's current lifecycle state
func (t *TrackEntry) State() TrackState {
	return t.state
}

// DisplayTitle returns the metadata title, falling back to the source
func (t *TrackEntry) DisplayTitle() string {
	if t.Metadata.Title != "" {
		return t.Metadata.Title
	}
	return t.Source
}

// FormatDuration renders a duration as MM:SS, or HH:MM:SS at one hour and up
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	secs := total % 60
	mins := (total / 60) % 60
	hrs := total / 3600

	if hrs == 0 {
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
