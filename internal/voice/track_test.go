package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"under a minute", 45 * time.Second, "00:45"},
		{"minutes and seconds", 125 * time.Second, "02:05"},
		{"over an hour", 3725 * time.Second, "01:02:05"},
		{"zero", 0, "00:00"},
		{"exactly one hour", time.Hour, "01:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestTrackEntryDefaults(t *testing.T) {
	entry := NewTrackEntry("https://example.com/song", "user-1", "chan-1")

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, StateQueued, entry.State())
	assert.Equal(t, "https://example.com/song", entry.DisplayTitle(), "title falls back to source")

	entry.Metadata.Title = "Some Song"
	assert.Equal(t, "Some Song", entry.DisplayTitle())
}

func TestTrackEntryUniqueIDs(t *testing.T) {
	a := NewTrackEntry("x", "u", "c")
	b := NewTrackEntry("x", "u", "c")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTrackStateString(t *testing.T) {
	assert.Equal(t, "queued", StateQueued.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
}
